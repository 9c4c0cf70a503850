// Package seginfo generates and parses segment filenames.
//
// Filename Format:
//
//	seg-<id>.bin                 a plain segment, <id> is its own id
//	compact<ts>-<maxid>.bin      a compacted segment; <maxid> is the id,
//	                             <ts> is a unique-per-compaction wall-clock
//	                             millisecond timestamp
//
// A file in the data directory is recognized as a segment only if its name
// matches the Pattern regex below; anything else in the directory is
// ignored. <id>/<maxid>/<ts> are always decimal, non-negative integers.
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Kind distinguishes a plain segment from one produced by compaction.
type Kind int

const (
	KindPlain Kind = iota
	KindCompacted
)

// Pattern recognizes both segment filename shapes. Group 1 is "seg" or
// "compact", group 2 is the optional timestamp following "compact", group 3
// is the id.
var Pattern = regexp.MustCompile(`^(seg|compact)(\d+)?-(\d+)\.bin$`)

// FileInfo describes one segment file discovered on disk.
type FileInfo struct {
	ID   uint64
	Kind Kind
	Name string
	Path string
}

// SegmentName returns the filename for a plain segment with the given id.
func SegmentName(id uint64) string {
	return fmt.Sprintf("seg-%d.bin", id)
}

// CompactedName returns the filename for a compacted segment whose id is
// maxSourceID and whose compaction ran at tsMillis.
func CompactedName(tsMillis int64, maxSourceID uint64) string {
	return fmt.Sprintf("compact%d-%d.bin", tsMillis, maxSourceID)
}

// Parse extracts the id and kind from a segment filename. ok is false if
// name does not match the recognized segment filename shapes.
func Parse(name string) (id uint64, kind Kind, ok bool) {
	m := Pattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}

	parsedID, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return 0, 0, false
	}

	if m[1] == "compact" {
		return parsedID, KindCompacted, true
	}
	return parsedID, KindPlain, true
}

// List scans dir for recognized segment files and returns them sorted by id
// ascending. Filenames that don't match Pattern are silently ignored, as
// mandated by the recognition rule.
func List(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, kind, ok := Parse(e.Name())
		if !ok {
			continue
		}
		infos = append(infos, FileInfo{
			ID:   id,
			Kind: kind,
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}
