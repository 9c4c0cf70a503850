package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: opening, reading, writing, seeking or unlinking a
	// segment file, or creating the base directory.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes map directly to the error kinds in the core's
// error handling design: a record header reporting a CRC that doesn't match
// its payload, a record truncated before completion, a lookup against a key
// the segment's index doesn't claim to hold, and an append attempted against
// a segment that isn't active.
const (
	// ErrorCodeCrcMismatch indicates that a record's stored CRC does not
	// match the CRC recomputed over its payload. Recoverable during a
	// recovery/compaction scan by resyncing one byte forward; surfaced to
	// callers only from a direct lookup against an indexed offset.
	ErrorCodeCrcMismatch ErrorCode = "CRC_MISMATCH"

	// ErrorCodeShortRead indicates an unexpected EOF before a record's
	// header or body could be read in full. Treated identically to
	// ErrorCodeCrcMismatch during recovery/compaction scans.
	ErrorCodeShortRead ErrorCode = "SHORT_READ"

	// ErrorCodeNotIndexed indicates a lookup for a key the segment's
	// in-memory index does not contain. Should never occur through the
	// database's public API, which checks containment first; surfacing it
	// signals a logic bug.
	ErrorCodeNotIndexed ErrorCode = "NOT_INDEXED"

	// ErrorCodeClosed indicates an append attempted against a segment that
	// is not the active, appendable segment.
	ErrorCodeClosed ErrorCode = "SEGMENT_CLOSED"

	// ErrorCodePermissionDenied indicates insufficient permissions to access a resource.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)
