// Package options provides data structures and functions for configuring a
// database instance. It defines the parameters that control the segment
// roll threshold, the base data directory, and the compactor's backstop
// ticker interval.
package options

import (
	"strings"
	"time"
)

// Options defines the configuration parameters for a database instance.
type Options struct {
	// DataDir is the base path where segment files are stored. One
	// directory per database instance; there is no further subdirectory
	// nesting or filename templating beneath it.
	DataDir string `json:"dataDir"`

	// SegmentSize is the byte threshold at which the active segment is
	// sealed and a new one takes over. Checked against the segment's
	// current file size, not against bytes remaining.
	SegmentSize uint64 `json:"segmentSize"`

	// CompactBackstopInterval is the period of a ticker that re-signals
	// the compactor even if no roll or explicit Compact() call did so.
	// Zero disables the backstop ticker entirely.
	CompactBackstopInterval time.Duration `json:"compactBackstopInterval"`
}

// OptionFunc is a function type that modifies a database's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies the package's default configuration values.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.SegmentSize = opts.SegmentSize
		o.CompactBackstopInterval = opts.CompactBackstopInterval
	}
}

// WithDataDir sets the directory a database instance persists its segment
// files under.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithSegmentSize sets the byte threshold at which the active segment
// rolls. Values outside [MinSegmentSize, MaxSegmentSize] are ignored.
func WithSegmentSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinSegmentSize && size <= MaxSegmentSize {
			o.SegmentSize = size
		}
	}
}

// WithCompactBackstopInterval sets the compactor's backstop ticker period.
// A non-positive interval disables the backstop ticker.
func WithCompactBackstopInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		o.CompactBackstopInterval = interval
	}
}
