package errors

// StorageError is a specialized error type for storage-related operations.
// It embeds baseError to inherit all the standard error functionality, then adds
// storage-specific fields that help pinpoint exactly where problems occurred.
type StorageError struct {
	*baseError
	segmentId int    // Which segment was being accessed when the error occurred.
	offset    int    // Byte offset within the segment where the problem happened.
	fileName  string // Name of the file that caused the issue.
	path      string // Path of the file that caused the issue.
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(err error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(err, code, msg)}
}

// WithSegmentID sets which storage segment was involved in the error.
func (se *StorageError) WithSegmentID(id int) *StorageError {
	se.segmentId = id
	return se
}

// WithOffset records the byte position where the error occurred.
func (se *StorageError) WithOffset(offset int) *StorageError {
	se.offset = offset
	return se
}

// WithFileName captures which file was being processed when the error occurred.
func (se *StorageError) WithFileName(fileName string) *StorageError {
	se.fileName = fileName
	return se
}

// WithPath captures which path was being processed when the error occurred.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

// SegmentId returns the segment identifier where the error occurred.
func (se *StorageError) SegmentId() int {
	return se.segmentId
}

// Offset returns the byte offset within the segment where the error happened.
// Combined with SegmentId, this gives you the exact location of the problem.
func (se *StorageError) Offset() int {
	return se.offset
}

// FileName returns the name of the file that was being processed.
func (se *StorageError) FileName() string {
	return se.fileName
}

// Path returns the path of the file that was being processed.
func (se *StorageError) Path() string {
	return se.path
}

// NewCrcMismatchError builds the error a segment lookup returns when a
// record's stored CRC disagrees with the CRC recomputed over its payload.
func NewCrcMismatchError(segmentID int, offset int, path string) *StorageError {
	return NewStorageError(nil, ErrorCodeCrcMismatch, "record CRC does not match computed checksum").
		WithSegmentID(segmentID).
		WithOffset(offset).
		WithPath(path)
}

// NewShortReadError builds the error returned when a record's header or
// body is truncated before it can be read in full.
func NewShortReadError(cause error, segmentID int, offset int, path string) *StorageError {
	return NewStorageError(cause, ErrorCodeShortRead, "record truncated before completion").
		WithSegmentID(segmentID).
		WithOffset(offset).
		WithPath(path)
}

// NewClosedSegmentError builds the error returned when an append is
// attempted against a segment that is not the active, appendable segment.
func NewClosedSegmentError(segmentID int) *StorageError {
	return NewStorageError(nil, ErrorCodeClosed, "cannot append to a non-active segment").
		WithSegmentID(segmentID)
}
