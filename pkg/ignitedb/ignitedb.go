// Package ignitedb provides an embedded, persistent, log-structured
// key-value store. Writes are appended to an active on-disk segment; reads
// consult an in-memory index mapping each key to the byte offset of its
// most recent record; deletions write a tombstone. A background compactor
// merges older sealed segments into a single compacted segment, discarding
// superseded writes and obsolete tombstones.
package ignitedb

import (
	"github.com/ignitedb/ignitedb/internal/database"
	"github.com/ignitedb/ignitedb/pkg/logger"
	"github.com/ignitedb/ignitedb/pkg/options"
)

// DB is an open database instance. The zero value is not usable; construct
// one with Open.
type DB struct {
	db *database.Database
}

// Open constructs and starts a database instance under the configured data
// directory, recovering any segments already present there. service names
// the instance for structured logging.
func Open(service string, opts ...options.OptionFunc) (*DB, error) {
	log := logger.New(service)

	cfg := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	inner, err := database.New(&database.Config{Options: &cfg, Logger: log})
	if err != nil {
		return nil, err
	}
	if err := inner.Start(); err != nil {
		return nil, err
	}

	return &DB{db: inner}, nil
}

// Get retrieves the value currently associated with key. The second return
// value is false if the key was never written or its most recent record is
// a tombstone.
func (d *DB) Get(key []byte) ([]byte, bool, error) {
	var out []byte
	live, err := d.db.Read(key, &out)
	if err != nil {
		return nil, false, err
	}
	return out, live, nil
}

// Put stores value under key, superseding any previous record for that key.
func (d *DB) Put(key, value []byte) error {
	return d.db.Write(key, value)
}

// Delete marks key as deleted by appending a tombstone record.
func (d *DB) Delete(key []byte) error {
	return d.db.Delete(key)
}

// Compact signals a compaction pass. It returns once the signal has been
// sent, not once the pass has completed — compaction runs on the
// background worker started by Open.
func (d *DB) Compact() error {
	return d.db.Compact()
}

// Close stops the background compactor and releases every segment file
// handle. Close is idempotent only in the sense that a second call returns
// an error rather than panicking; it must not be called concurrently with
// other operations on the same DB.
func (d *DB) Close() error {
	return d.db.Stop()
}
