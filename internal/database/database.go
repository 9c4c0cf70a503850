// Package database implements the segment ring: the active/sealed/compacted
// lifecycle, descending-id read routing, capacity-triggered rolling, and
// the crash-recovery scan that rebuilds every segment's index at startup.
//
// A Database owns exactly one active segment at a time and a read/write
// lock guarding the segment map. Reads walk segments from the highest id
// down; a compacted segment that lacks a key ends the walk early, since by
// construction it covers every key any of its inputs ever held.
package database

import (
	stdErrors "errors"
	"path/filepath"

	"github.com/ignitedb/ignitedb/internal/compaction"
	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/filesys"
	"github.com/ignitedb/ignitedb/pkg/seginfo"
)

var (
	// ErrClosed is returned by any public operation invoked after Stop.
	ErrClosed = stdErrors.New("operation failed: database is closed")

	// ErrAlreadyStopped is returned by a second call to Stop.
	ErrAlreadyStopped = stdErrors.New("operation failed: database already stopped")
)

// New validates config and constructs a Database. The returned instance
// does not touch the filesystem until Start is called.
func New(config *Config) (*Database, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "options and logger must be provided")
	}
	if config.Options.DataDir == "" {
		return nil, errors.NewRequiredFieldError("DataDir")
	}

	return &Database{
		options:  config.Options,
		log:      config.Logger,
		segments: make(map[uint64]*segment.Segment),
	}, nil
}

// Start creates the base directory (if absent) or recovers every existing
// segment found within it, then opens a fresh active segment and launches
// the background compactor. The first active segment after Start is always
// new and empty, even when segments were recovered — the highest recovered
// id is sealed immediately rather than reused as active.
func (d *Database) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	exists, err := filesys.Exists(d.options.DataDir)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to check data directory").
			WithPath(d.options.DataDir)
	}

	var recoveredAny bool

	if !exists {
		if err := filesys.CreateDir(d.options.DataDir, 0755, true); err != nil {
			return errors.ClassifyDirectoryCreationError(err, d.options.DataDir)
		}
		d.log.Infow("created new data directory", "path", d.options.DataDir)
	} else {
		files, err := seginfo.List(d.options.DataDir)
		if err != nil {
			return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to list segment files").
				WithPath(d.options.DataDir)
		}

		for _, f := range files {
			kind := segment.KindSealedPlain
			if f.Kind == seginfo.KindCompacted {
				kind = segment.KindSealedCompacted
			}

			seg, err := segment.Recover(f.ID, f.Path, kind, d.log)
			if err != nil {
				return err
			}

			d.segments[f.ID] = seg
			if f.ID > d.currentID {
				d.currentID = f.ID
			}
			recoveredAny = true
		}

		d.log.Infow("recovered segments", "count", len(files), "highestId", d.currentID)
	}

	newID := d.currentID + 1
	activePath := filepath.Join(d.options.DataDir, seginfo.SegmentName(newID))
	active, err := segment.OpenNew(newID, activePath, d.log)
	if err != nil {
		return err
	}

	d.segments[newID] = active
	d.active = active
	d.currentID = newID

	d.compactor = compaction.New(d, d.options.CompactBackstopInterval, d.log)
	d.compactor.Start()
	if recoveredAny {
		d.compactor.Signal()
	}

	d.log.Infow("database started", "activeSegmentId", newID)
	return nil
}

// Stop shuts the database down: it stops the compactor, closes every
// segment (logging, not failing, on individual close errors), and marks the
// database closed. In-flight public operations run to completion before
// Stop returns, since Stop itself blocks on the same write lock they hold.
func (d *Database) Stop() error {
	if !d.closed.CompareAndSwap(false, true) {
		return ErrAlreadyStopped
	}

	if d.compactor != nil {
		d.compactor.Stop()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for id, seg := range d.segments {
		if err := seg.Close(); err != nil {
			d.log.Warnw("failed to close segment during shutdown", "segmentId", id, "error", err)
		}
	}
	return nil
}

// Read walks segments from the current highest id down, returning the
// value from the first segment whose index contains key. A compacted
// segment that lacks key ends the walk immediately: by construction it
// covers every key any of its input segments ever held, so the key cannot
// be present in any older segment either. Returning false covers both "no
// segment held the key" and "the most recent record was a tombstone" —
// callers cannot and needn't distinguish the two.
func (d *Database) Read(key []byte, out *[]byte) (bool, error) {
	if d.closed.Load() {
		return false, ErrClosed
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for id := d.currentID; id >= 1; id-- {
		seg, ok := d.segments[id]
		if !ok {
			continue
		}
		if seg.Contains(key) {
			return seg.Lookup(key, out)
		}
		if seg.Kind() == segment.KindSealedCompacted {
			return false, nil
		}
	}
	return false, nil
}

// Write appends key/value to the active segment and, if that pushed it to
// capacity, rolls to a fresh active segment and signals the compactor.
func (d *Database) Write(key, value []byte) error {
	return d.append(key, value, false)
}

// Delete appends a tombstone for key to the active segment (and rolls, per
// the same rule as Write, if that reaches capacity).
func (d *Database) Delete(key []byte) error {
	return d.append(key, nil, true)
}

func (d *Database) append(key, value []byte, tombstone bool) error {
	if d.closed.Load() {
		return ErrClosed
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.active.Append(key, value, tombstone); err != nil {
		return err
	}

	if !d.active.AtCapacity(d.options.SegmentSize) {
		return nil
	}

	if err := d.active.Seal(); err != nil {
		return err
	}

	newID := d.currentID + 1
	activePath := filepath.Join(d.options.DataDir, seginfo.SegmentName(newID))
	newActive, err := segment.OpenNew(newID, activePath, d.log)
	if err != nil {
		return err
	}

	d.segments[newID] = newActive
	d.active = newActive
	d.currentID = newID

	d.log.Infow("rolled active segment", "newSegmentId", newID)
	d.compactor.Signal()
	return nil
}

// Compact signals a compaction pass. The signal coalesces with any pass
// already pending, so rapid repeated calls are safe.
func (d *Database) Compact() error {
	if d.closed.Load() {
		return ErrClosed
	}
	d.compactor.Signal()
	return nil
}

// DataDir implements compaction.Host.
func (d *Database) DataDir() string {
	return d.options.DataDir
}

// PublishCompacted implements compaction.Host. newSeg's id equals the
// highest input id the compaction pass merged, which is always the id of an
// existing segment in the map (plain or previously compacted) — so
// publishing must retire that segment's file too, not just every id below
// it. The map insertion happens before any deletion, so a concurrent reader
// always sees either the old inputs or the new segment, never a gap.
func (d *Database) PublishCompacted(newSeg *segment.Segment) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	newID := newSeg.ID()
	superseded := d.segments[newID]
	d.segments[newID] = newSeg

	if superseded != nil {
		if err := superseded.DeleteFile(); err != nil {
			d.log.Warnw("failed to delete retired segment file", "segmentId", newID, "error", err)
		}
	}

	for i := newID - 1; i >= 1; i-- {
		old, ok := d.segments[i]
		if !ok {
			continue
		}
		delete(d.segments, i)
		if err := old.DeleteFile(); err != nil {
			d.log.Warnw("failed to delete retired segment file", "segmentId", i, "error", err)
		}
	}
	return nil
}
