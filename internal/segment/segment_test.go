package segment

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	l, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("zap.NewDevelopment: %v", err)
	}
	return l.Sugar()
}

func TestAppendAndLookup(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenNew(1, filepath.Join(dir, "seg-1.bin"), testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	defer s.Close()

	if _, err := s.Append([]byte("hello"), []byte("world"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}

	var out []byte
	live, err := s.Lookup([]byte("hello"), &out)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !live {
		t.Fatal("expected live record")
	}
	if string(out) != "world" {
		t.Fatalf("got %q want %q", out, "world")
	}
}

func TestLookupNotIndexed(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenNew(1, filepath.Join(dir, "seg-1.bin"), testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	defer s.Close()

	var out []byte
	_, err = s.Lookup([]byte("missing"), &out)
	if err == nil {
		t.Fatal("expected NotIndexed error")
	}
}

func TestTombstoneLookup(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenNew(1, filepath.Join(dir, "seg-1.bin"), testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	defer s.Close()

	if _, err := s.Append([]byte("k"), []byte("v"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.Append([]byte("k"), nil, true); err != nil {
		t.Fatalf("Append tombstone: %v", err)
	}

	var out []byte
	live, err := s.Lookup([]byte("k"), &out)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if live {
		t.Fatal("expected tombstoned (not live) record")
	}
}

func TestAppendOnSealedFails(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenNew(1, filepath.Join(dir, "seg-1.bin"), testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	if err := s.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := s.Append([]byte("k"), []byte("v"), false); err == nil {
		t.Fatal("expected Closed error appending to a sealed segment")
	}
}

func TestRecoverRebuildsIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seg-1.bin")

	s, err := OpenNew(1, path, testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	if _, err := s.Append([]byte("a"), []byte("1"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.Append([]byte("a"), []byte("2"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.Append([]byte("b"), []byte("y"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	recovered, err := Recover(1, path, KindSealedPlain, testLogger(t))
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}

	var out []byte
	live, err := recovered.Lookup([]byte("a"), &out)
	if err != nil || !live {
		t.Fatalf("Lookup(a): live=%v err=%v", live, err)
	}
	if string(out) != "2" {
		t.Fatalf("expected most recent value '2', got %q", out)
	}
	if !recovered.Contains([]byte("b")) {
		t.Fatal("expected recovered index to contain 'b'")
	}
}

func TestRecoverResyncsPastCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seg-1.bin")

	s, err := OpenNew(1, path, testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	if _, err := s.Append([]byte("good"), []byte("value"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Corrupt the CRC of the only record by flipping its first byte, then
	// recovery should produce an empty index for this file.
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xFF}, 0); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	f.Close()

	recovered, err := Recover(1, path, KindSealedPlain, testLogger(t))
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if recovered.Contains([]byte("good")) {
		t.Fatal("expected corrupted record to be dropped from recovered index")
	}
}

func TestAtCapacity(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenNew(1, filepath.Join(dir, "seg-1.bin"), testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	defer s.Close()

	if s.AtCapacity(1) {
		t.Fatal("fresh empty segment should not be at capacity for threshold 1")
	}
	if _, err := s.Append([]byte("k"), []byte("v"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !s.AtCapacity(1) {
		t.Fatal("expected segment to be at capacity after exceeding threshold")
	}
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seg-1.bin")
	s, err := OpenNew(1, path, testLogger(t))
	if err != nil {
		t.Fatalf("OpenNew: %v", err)
	}

	if err := s.DeleteFile(); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err=%v", err)
	}
}
