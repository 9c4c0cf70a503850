// Package segment implements the append-only file and in-memory index that
// back one entry in a database's segment ring.
//
// A segment is created in one of two ways: OpenNew starts an empty active
// segment with a fresh id; Recover opens an existing file and rebuilds its
// index by scanning it from the front, resyncing byte-by-byte over any
// corrupted or torn trailing record. Both paths converge on the same
// Segment type; only an actively-open segment accepts Append.
package segment

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/ignitedb/ignitedb/internal/record"
	apperrors "github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/filesys"
	"go.uber.org/zap"
)

// OpenNew creates a brand new, empty segment file at path and returns it as
// an active segment ready to accept appends.
func OpenNew(id uint64, path string, log *zap.SugaredLogger) (*Segment, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND|os.O_EXCL, 0644)
	if err != nil {
		return nil, apperrors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}

	log.Infow("opened new active segment", "segmentId", id, "path", path)

	return &Segment{
		id:     id,
		kind:   KindActive,
		path:   path,
		writer: f,
		index:  make(map[string]indexEntry),
		log:    log,
	}, nil
}

// Recover opens an existing segment file, rebuilds its index by scanning
// the file from the front, and returns it sealed (never active — recovered
// segments are never appended to directly; the database always opens a
// fresh active segment after recovery). kind distinguishes a plain recovered
// segment from a compacted one, which only affects read routing upstream.
func Recover(id uint64, path string, kind Kind, log *zap.SugaredLogger) (*Segment, error) {
	s := &Segment{
		id:    id,
		kind:  kind,
		path:  path,
		index: make(map[string]indexEntry),
		log:   log,
	}

	size, err := s.rebuildIndex()
	if err != nil {
		return nil, err
	}
	s.size = size

	log.Infow("recovered segment", "segmentId", id, "path", path, "size", size, "keys", len(s.index))
	return s, nil
}

// rebuildIndex scans the segment file from offset 0, inserting key->offset
// for every record that decodes cleanly, and resyncing one byte at a time
// past any record that doesn't. It returns the file's current size.
func (s *Segment) rebuildIndex() (int64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return 0, apperrors.ClassifyFileOpenError(err, s.path, filepath.Base(s.path))
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, apperrors.NewStorageError(err, apperrors.ErrorCodeIO, "failed to stat segment file").
			WithSegmentID(int(s.id)).
			WithPath(s.path)
	}
	fileSize := stat.Size()

	br := bufio.NewReader(f)
	var offset int64

	for {
		rec, n, err := record.Decode(br, int(s.id), int(offset), s.path)
		if err != nil {
			if offset >= fileSize {
				break
			}
			if _, seekErr := f.Seek(offset+1, io.SeekStart); seekErr != nil {
				return 0, apperrors.NewStorageError(seekErr, apperrors.ErrorCodeIO, "failed to resync segment after decode error").
					WithSegmentID(int(s.id)).
					WithOffset(int(offset)).
					WithPath(s.path)
			}
			br.Reset(f)
			offset++
			continue
		}

		s.index[string(rec.Key)] = indexEntry{offset: offset}
		offset += n
	}

	return fileSize, nil
}

// Append encodes key/value (or, when tombstone is true, a tombstone for key,
// ignoring value) and appends it to the segment's file. It returns the byte offset at
// which the record begins. Fails with a Closed error if the segment isn't
// the active, appendable segment.
func (s *Segment) Append(key, value []byte, tombstone bool) (int64, error) {
	if s.writer == nil {
		return 0, apperrors.NewClosedSegmentError(int(s.id))
	}

	buf := record.Encode(&record.Record{Key: key, Value: value, Tombstone: tombstone})

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	offset := s.size
	if _, err := s.writer.Write(buf); err != nil {
		return 0, apperrors.NewStorageError(err, apperrors.ErrorCodeIO, "failed to append record").
			WithSegmentID(int(s.id)).
			WithOffset(int(offset)).
			WithPath(s.path)
	}
	s.size += int64(len(buf))

	s.idxMu.Lock()
	s.index[string(key)] = indexEntry{offset: offset}
	s.idxMu.Unlock()

	return offset, nil
}

// Lookup reads the record at the offset the index holds for key, decodes
// it, and reports whether the record is live. out receives the value bytes
// for a live record; it is left untouched for a tombstone. Fails with a
// NotIndexed error if key isn't present in this segment's index.
func (s *Segment) Lookup(key []byte, out *[]byte) (bool, error) {
	s.idxMu.RLock()
	entry, ok := s.index[string(key)]
	s.idxMu.RUnlock()
	if !ok {
		return false, apperrors.NewNotIndexedError(string(key), uint16(s.id))
	}

	f, err := os.Open(s.path)
	if err != nil {
		return false, apperrors.ClassifyFileOpenError(err, s.path, filepath.Base(s.path))
	}
	defer f.Close()

	if _, err := f.Seek(entry.offset, io.SeekStart); err != nil {
		return false, apperrors.NewStorageError(err, apperrors.ErrorCodeIO, "failed to seek to indexed offset").
			WithSegmentID(int(s.id)).
			WithOffset(int(entry.offset)).
			WithPath(s.path)
	}

	rec, _, err := record.Decode(f, int(s.id), int(entry.offset), s.path)
	if err != nil {
		return false, err
	}

	if rec.Tombstone {
		return false, nil
	}
	*out = rec.Value
	return true, nil
}

// Contains reports whether key is present in this segment's in-memory
// index, without touching the file.
func (s *Segment) Contains(key []byte) bool {
	s.idxMu.RLock()
	defer s.idxMu.RUnlock()
	_, ok := s.index[string(key)]
	return ok
}

// Keys returns a snapshot of the keys currently held in this segment's
// index. Used only by the compactor, which never calls it on the active
// segment.
func (s *Segment) Keys() []string {
	s.idxMu.RLock()
	defer s.idxMu.RUnlock()
	keys := make([]string, 0, len(s.index))
	for k := range s.index {
		keys = append(keys, k)
	}
	return keys
}

// SizeBytes returns the segment's current file size.
func (s *Segment) SizeBytes() int64 {
	return s.size
}

// AtCapacity reports whether the segment has reached or exceeded threshold
// bytes.
func (s *Segment) AtCapacity(threshold uint64) bool {
	return uint64(s.size) >= threshold
}

// Close releases the segment's append handle, if any. Safe to call more
// than once.
func (s *Segment) Close() error {
	if s.writer == nil {
		return nil
	}
	w := s.writer
	s.writer = nil

	if err := w.Sync(); err != nil {
		w.Close()
		return apperrors.ClassifySyncError(err, filepath.Base(s.path), s.path, int(s.size))
	}

	if err := w.Close(); err != nil {
		return apperrors.NewStorageError(err, apperrors.ErrorCodeIO, "failed to close segment file").
			WithSegmentID(int(s.id)).
			WithPath(s.path)
	}
	return nil
}

// Seal marks an active segment as sealed-plain, releasing its append
// handle. Called when the database rolls to a new active segment.
func (s *Segment) Seal() error {
	if err := s.Close(); err != nil {
		return err
	}
	s.kind = KindSealedPlain
	return nil
}

// SealAsCompacted releases the append handle of a segment that was just
// written by a compaction pass and marks it sealed-compacted. Called once
// the compactor has finished writing every surviving record to it.
func (s *Segment) SealAsCompacted() error {
	if err := s.Close(); err != nil {
		return err
	}
	s.kind = KindSealedCompacted
	return nil
}

// DeleteFile closes the segment (if still open) and unlinks its file.
func (s *Segment) DeleteFile() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := filesys.DeleteFile(s.path); err != nil {
		return apperrors.NewStorageError(err, apperrors.ErrorCodeIO, "failed to delete segment file").
			WithSegmentID(int(s.id)).
			WithPath(s.path)
	}
	return nil
}
