package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ignitedb/ignitedb/pkg/options"
)

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	l, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("zap.NewDevelopment: %v", err)
	}
	return l.Sugar()
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ignitedb.yml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesOptionFuncs(t *testing.T) {
	path := writeConfigFile(t, `
data_dir: /var/lib/ignitedb
segment_size_bytes: 2048
compact_backstop_interval_secs: 30
`)

	cfg, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := options.NewDefaultOptions()
	for _, apply := range cfg.OptionFuncs() {
		apply(&got)
	}

	if got.DataDir != "/var/lib/ignitedb" {
		t.Fatalf("DataDir = %q", got.DataDir)
	}
	if got.SegmentSize != 2048 {
		t.Fatalf("SegmentSize = %d", got.SegmentSize)
	}
	if got.CompactBackstopInterval != 30*time.Second {
		t.Fatalf("CompactBackstopInterval = %v", got.CompactBackstopInterval)
	}
}

func TestLoadRejectsOutOfRangeSegmentSize(t *testing.T) {
	path := writeConfigFile(t, `
data_dir: /var/lib/ignitedb
segment_size_bytes: 999999999999999
`)

	if _, err := Load(path, testLogger(t)); err == nil {
		t.Fatal("expected an error for an out-of-range segment_size_bytes")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml"), testLogger(t)); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
