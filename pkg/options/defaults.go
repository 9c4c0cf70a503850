package options

import "time"

const (
	// DefaultCompactBackstopInterval is how often the compactor re-signals
	// itself even without a write-triggered roll or an explicit Compact()
	// call. It exists purely as a safety net against a missed signal; it
	// does not change what a compaction pass does.
	DefaultCompactBackstopInterval = time.Hour * 5

	// MinSegmentSize is the smallest roll threshold accepted. It is kept
	// low rather than clamped to a production-sized floor so that tests
	// can force frequent rolls deterministically.
	MinSegmentSize uint64 = 1

	// MaxSegmentSize is the largest roll threshold accepted (4GB).
	MaxSegmentSize uint64 = 4 * 1024 * 1024 * 1024

	// DefaultSegmentSize is the roll threshold used when the caller
	// doesn't override it (1GB).
	DefaultSegmentSize uint64 = 1 * 1024 * 1024 * 1024
)

// Holds the default configuration settings for an ignitedb instance.
var defaultOptions = Options{
	SegmentSize:             DefaultSegmentSize,
	CompactBackstopInterval: DefaultCompactBackstopInterval,
}

// NewDefaultOptions returns a fresh copy of the package's default settings.
func NewDefaultOptions() Options {
	return defaultOptions
}
