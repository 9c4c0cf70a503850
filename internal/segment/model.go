package segment

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// Kind describes a segment's position in its lifecycle.
type Kind int

const (
	// KindActive is the single segment currently accepting appends.
	KindActive Kind = iota
	// KindSealedPlain is a segment closed for writing, produced either by
	// a roll or by startup recovery.
	KindSealedPlain
	// KindSealedCompacted is a sealed segment produced by merging older
	// sealed segments; it guarantees coverage of every key that appeared
	// in its inputs.
	KindSealedCompacted
)

// indexEntry is the in-memory pointer to one key's most recent record
// within this segment.
type indexEntry struct {
	offset int64
}

// Segment is one append-only file plus the in-memory index mapping each key
// it has ever held to the byte offset of its most recent record. Only the
// active segment is ever appended to; sealed and compacted segments are
// read-only once constructed.
type Segment struct {
	id   uint64
	kind Kind
	path string

	// appendMu serializes append() so the offset it captures before
	// writing matches the bytes it then writes.
	appendMu sync.Mutex
	writer   *os.File // non-nil only for the active segment
	size     int64

	// idxMu guards index against concurrent reads during a lookup racing
	// an in-progress append (keys() enumeration in particular).
	idxMu sync.RWMutex
	index map[string]indexEntry

	log *zap.SugaredLogger
}

// ID returns the segment's id.
func (s *Segment) ID() uint64 { return s.id }

// Kind returns the segment's current lifecycle state.
func (s *Segment) Kind() Kind { return s.kind }

// Path returns the segment's file path.
func (s *Segment) Path() string { return s.path }
