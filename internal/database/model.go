package database

import (
	"sync"
	"sync/atomic"

	"github.com/ignitedb/ignitedb/internal/compaction"
	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/pkg/options"
	"go.uber.org/zap"
)

// Database owns a set of segments keyed by a monotonically increasing id,
// designates exactly one as the active (writable) segment, routes reads
// through segments in reverse id order, rolls the active segment at a size
// threshold, and drives recovery at startup.
type Database struct {
	options *options.Options
	log     *zap.SugaredLogger

	// mu is the database-wide segment-map lock. Acquired in read mode by
	// Read; in write mode by Write, Delete, Stop, segment rolling, new
	// active segment creation, and the compactor's PublishCompacted.
	mu        sync.RWMutex
	segments  map[uint64]*segment.Segment
	currentID uint64
	active    *segment.Segment

	closed    atomic.Bool
	compactor *compaction.Compactor
}

// Config holds the parameters needed to construct a Database.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
