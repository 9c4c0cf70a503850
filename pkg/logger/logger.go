// Package logger constructs the structured logger threaded through every
// constructor in this module.
package logger

import "go.uber.org/zap"

// New builds a production zap logger tagged with the given service name
// and returns its sugared form, matching the verbosity the rest of the
// module logs at.
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails if the default config can't build
		// its own encoder/sink, which never happens with the stock config
		// this calls with. Falling back to a no-op logger keeps callers
		// from having to handle an error that can't occur in practice.
		return zap.NewNop().Sugar()
	}
	return base.Sugar().With("service", service)
}
