// Package compaction implements the background worker that merges a
// database's sealed segments into a single sealed-compacted segment.
//
// The worker never runs on a timer alone: it blocks on a coalescing trigger
// channel released by an explicit Compact() call, by startup recovery when
// segments were found, and by a write/delete that rolled the active
// segment. A backstop ticker re-releases the same trigger purely as a
// safety net against a missed signal; it never changes what a pass does.
package compaction

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/pkg/seginfo"
	"go.uber.org/zap"
)

// Host is the narrow view of a database a Compactor needs. It exists so
// this package never imports the database package back — the compactor
// holds only this reference, never a concrete database type.
type Host interface {
	// DataDir returns the directory segment files live in.
	DataDir() string
	// PublishCompacted registers newSeg under the database's segment map,
	// then removes and deletes every segment with a lower id. It must do
	// so under the database's write lock so that a concurrent reader
	// never observes a gap between the old inputs and the new segment.
	PublishCompacted(newSeg *segment.Segment) error
}

// Compactor is the single background worker that runs compaction passes.
type Compactor struct {
	host Host
	log  *zap.SugaredLogger

	trigger chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}

	backstopInterval time.Duration
}

// New constructs a Compactor bound to host. backstopInterval may be zero to
// disable the backstop ticker entirely.
func New(host Host, backstopInterval time.Duration, log *zap.SugaredLogger) *Compactor {
	return &Compactor{
		host:             host,
		log:              log,
		trigger:          make(chan struct{}, 1),
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
		backstopInterval: backstopInterval,
	}
}

// Start launches the worker goroutine. It returns immediately.
func (c *Compactor) Start() {
	go c.run()
}

// Signal releases the trigger. Non-blocking: if a signal is already pending
// the call is a no-op, so rapid repeated calls coalesce into at most one
// extra pass.
func (c *Compactor) Signal() {
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// Stop requests the worker to exit and blocks until it has.
func (c *Compactor) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

func (c *Compactor) run() {
	defer close(c.doneCh)

	var ticker *time.Ticker
	var tickerC <-chan time.Time
	if c.backstopInterval > 0 {
		ticker = time.NewTicker(c.backstopInterval)
		defer ticker.Stop()
		tickerC = ticker.C
	}

	for {
		select {
		case <-c.stopCh:
			return
		case <-tickerC:
			c.Signal()
		case <-c.trigger:
			if err := c.runPass(); err != nil {
				c.log.Warnw("compaction pass failed, will retry on next trigger", "error", err)
			}
		}
	}
}

// runPass executes one compaction pass: it lists every segment file except
// the active one, merges them into a new sealed-compacted segment, and asks
// the host to publish it. If any I/O step fails the pass is abandoned; the
// next trigger retries from scratch.
func (c *Compactor) runPass() error {
	dataDir := c.host.DataDir()

	files, err := seginfo.List(dataDir)
	if err != nil {
		return fmt.Errorf("listing segment files: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })

	// The active segment is always the strict-highest id among the files
	// this listing can observe, so dropping the last entry excludes it even
	// if a concurrent write/delete rolled to a new active between the list
	// call and now. Never exclude by a separately-read ActiveSegmentID: a
	// roll in that window would leave the new active file in, unexcluded,
	// and PublishCompacted would later delete it out from under a writer.
	if len(files) < 1 {
		return nil
	}
	inputs := files[:len(files)-1]

	if len(inputs) < 2 {
		return nil
	}

	recovered := make([]*segment.Segment, 0, len(inputs))
	for _, in := range inputs {
		kind := segment.KindSealedPlain
		if in.Kind == seginfo.KindCompacted {
			kind = segment.KindSealedCompacted
		}
		seg, err := segment.Recover(in.ID, in.Path, kind, c.log)
		if err != nil {
			return fmt.Errorf("recovering input segment %d: %w", in.ID, err)
		}
		recovered = append(recovered, seg)
	}

	// Later inputs overwrite earlier ones, so the final entry for each key
	// refers to the highest-id input it appears in.
	mostRecent := make(map[string]*segment.Segment)
	for _, seg := range recovered {
		for _, key := range seg.Keys() {
			mostRecent[key] = seg
		}
	}

	maxInputID := inputs[len(inputs)-1].ID
	compactedPath := filepath.Join(dataDir, seginfo.CompactedName(time.Now().UnixMilli(), maxInputID))

	newSeg, err := segment.OpenNew(maxInputID, compactedPath, c.log)
	if err != nil {
		return fmt.Errorf("creating compacted segment: %w", err)
	}

	for key, sourceSeg := range mostRecent {
		var value []byte
		live, err := sourceSeg.Lookup([]byte(key), &value)
		if err != nil {
			_ = newSeg.Close()
			return fmt.Errorf("reading %q from source segment %d: %w", key, sourceSeg.ID(), err)
		}
		if live {
			if _, err := newSeg.Append([]byte(key), value, false); err != nil {
				_ = newSeg.Close()
				return fmt.Errorf("appending %q to compacted segment: %w", key, err)
			}
		} else {
			if _, err := newSeg.Append([]byte(key), nil, true); err != nil {
				_ = newSeg.Close()
				return fmt.Errorf("appending tombstone %q to compacted segment: %w", key, err)
			}
		}
	}

	if err := newSeg.SealAsCompacted(); err != nil {
		return fmt.Errorf("sealing compacted segment: %w", err)
	}

	if err := c.host.PublishCompacted(newSeg); err != nil {
		return fmt.Errorf("publishing compacted segment: %w", err)
	}

	c.log.Infow("compaction pass complete",
		"newSegmentId", newSeg.ID(),
		"inputCount", len(inputs),
		"keysWritten", len(mostRecent),
	)
	return nil
}
