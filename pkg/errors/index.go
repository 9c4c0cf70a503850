package errors

// IndexError reports a failure against a segment's in-memory key index: a
// lookup for a key the index doesn't claim to hold, or (reserved for future
// callers) other index-scoped failures that need a key/operation/segment to
// point at.
type IndexError struct {
	*baseError

	key       string
	segmentID uint16
	operation string
}

// NewIndexError wraps err as an index failure tagged with code.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{
		baseError: NewBaseError(err, code, msg),
	}
}

func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

func (ie *IndexError) WithCode(code ErrorCode) *IndexError {
	ie.baseError.WithCode(code)
	return ie
}

func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which key was being looked up.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithSegmentID records which segment's index was involved.
func (ie *IndexError) WithSegmentID(segmentID uint16) *IndexError {
	ie.segmentID = segmentID
	return ie
}

// WithOperation records which index operation was being performed (e.g.
// "Lookup").
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

func (ie *IndexError) Key() string       { return ie.key }
func (ie *IndexError) SegmentID() uint16 { return ie.segmentID }
func (ie *IndexError) Operation() string { return ie.operation }

// NewNotIndexedError builds the error a segment lookup returns when the
// requested key is absent from that segment's in-memory index. Through the
// database's public API this should never surface, since Read checks
// Contains before calling Lookup; it signals a logic bug if it does.
func NewNotIndexedError(key string, segmentID uint16) *IndexError {
	return NewIndexError(nil, ErrorCodeNotIndexed, "key not present in segment index").
		WithKey(key).
		WithSegmentID(segmentID).
		WithOperation("Lookup")
}
