package seginfo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePlainSegment(t *testing.T) {
	id, kind, ok := Parse("seg-42.bin")
	if !ok || id != 42 || kind != KindPlain {
		t.Fatalf("Parse(seg-42.bin) = id=%d kind=%v ok=%v", id, kind, ok)
	}
}

func TestParseCompactedSegment(t *testing.T) {
	id, kind, ok := Parse("compact1700000000000-7.bin")
	if !ok || id != 7 || kind != KindCompacted {
		t.Fatalf("Parse(compact...) = id=%d kind=%v ok=%v", id, kind, ok)
	}
}

func TestParseRejectsUnrecognizedNames(t *testing.T) {
	for _, name := range []string{"notes.txt", "seg-abc.bin", "segment-1.bin", "compact-.bin"} {
		if _, _, ok := Parse(name); ok {
			t.Fatalf("Parse(%q) unexpectedly matched", name)
		}
	}
}

func TestSegmentNameRoundTrip(t *testing.T) {
	id, kind, ok := Parse(SegmentName(9))
	if !ok || id != 9 || kind != KindPlain {
		t.Fatalf("round trip through SegmentName failed: id=%d kind=%v ok=%v", id, kind, ok)
	}
}

func TestCompactedNameRoundTrip(t *testing.T) {
	id, kind, ok := Parse(CompactedName(1234, 5))
	if !ok || id != 5 || kind != KindCompacted {
		t.Fatalf("round trip through CompactedName failed: id=%d kind=%v ok=%v", id, kind, ok)
	}
}

func TestListIgnoresUnrecognizedFilesAndSortsByID(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"seg-3.bin", "seg-1.bin", "compact100-2.bin", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	files, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 recognized segment files, got %d", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i-1].ID >= files[i].ID {
			t.Fatalf("expected ascending id order, got %v", files)
		}
	}
}

func TestListOnMissingDirectoryReturnsEmpty(t *testing.T) {
	files, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files for a missing directory, got %v", files)
	}
}
