// Package config loads database configuration from a YAML file, with
// environment-variable expansion sourced from an optional .env file. Unlike
// a process-wide singleton, Load returns a fresh value each call so that a
// single process hosting several database instances can load distinct
// configuration files for each.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/options"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// FileConfig is the shape of the YAML configuration file. Field values may
// reference environment variables with ${VAR} syntax; they are expanded
// before the YAML is parsed.
type FileConfig struct {
	DataDir                     string `yaml:"data_dir"`
	SegmentSizeBytes            uint64 `yaml:"segment_size_bytes"`
	CompactBackstopIntervalSecs uint32 `yaml:"compact_backstop_interval_secs"`
}

// Load reads and parses the YAML file at path. It first attempts to load a
// .env file from the current directory via godotenv; a missing .env file is
// not an error, since most deployments configure purely through the YAML
// file or ambient environment variables.
func Load(path string, log *zap.SugaredLogger) (*FileConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugw("no .env file loaded", "error", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.DataDir = strings.TrimSpace(cfg.DataDir)

	if cfg.SegmentSizeBytes != 0 &&
		(cfg.SegmentSizeBytes < options.MinSegmentSize || cfg.SegmentSizeBytes > options.MaxSegmentSize) {
		return nil, apperrors.NewFieldRangeError(
			"segment_size_bytes", cfg.SegmentSizeBytes, options.MinSegmentSize, options.MaxSegmentSize,
		)
	}

	return &cfg, nil
}

// OptionFuncs translates the parsed file into the composable OptionFuncs
// pkg/options expects, so a loaded FileConfig plugs directly into the same
// construction path as options set programmatically.
func (c *FileConfig) OptionFuncs() []options.OptionFunc {
	var opts []options.OptionFunc

	if c.DataDir != "" {
		opts = append(opts, options.WithDataDir(c.DataDir))
	}
	if c.SegmentSizeBytes != 0 {
		opts = append(opts, options.WithSegmentSize(c.SegmentSizeBytes))
	}
	if c.CompactBackstopIntervalSecs != 0 {
		opts = append(opts, options.WithCompactBackstopInterval(
			time.Duration(c.CompactBackstopIntervalSecs)*time.Second,
		))
	}

	return opts
}
