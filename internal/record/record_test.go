package record

import (
	"bytes"
	"testing"

	apperrors "github.com/ignitedb/ignitedb/pkg/errors"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*Record{
		{Key: []byte("hello"), Value: []byte("world")},
		{Key: []byte(""), Value: []byte("")},
		{Key: []byte("a"), Tombstone: true},
		{Key: []byte("large"), Value: bytes.Repeat([]byte("x"), 4096)},
	}

	for _, want := range cases {
		buf := Encode(want)
		got, size, err := Decode(bytes.NewReader(buf), 1, 0, "seg-1.bin")
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if size != int64(len(buf)) {
			t.Fatalf("size mismatch: got %d want %d", size, len(buf))
		}
		if !bytes.Equal(got.Key, want.Key) {
			t.Fatalf("key mismatch: got %q want %q", got.Key, want.Key)
		}
		if got.Tombstone != want.Tombstone {
			t.Fatalf("tombstone mismatch: got %v want %v", got.Tombstone, want.Tombstone)
		}
		if !want.Tombstone && !bytes.Equal(got.Value, want.Value) {
			t.Fatalf("value mismatch: got %q want %q", got.Value, want.Value)
		}
	}
}

func TestEncodeKnownWireFormat(t *testing.T) {
	buf := Encode(&Record{Key: []byte("hello"), Value: []byte("world")})

	wantCrc := []byte{0x00, 0x00, 0x00, 0x00, 0x22, 0x93, 0x2B, 0xB2}
	if !bytes.Equal(buf[0:8], wantCrc) {
		t.Fatalf("crc prefix mismatch: got % x want % x", buf[0:8], wantCrc)
	}
	if !bytes.Equal(buf[8:12], []byte{0, 0, 0, 5}) {
		t.Fatalf("key_len mismatch: got % x", buf[8:12])
	}
	if !bytes.Equal(buf[12:16], []byte{0, 0, 0, 5}) {
		t.Fatalf("value_len mismatch: got % x", buf[12:16])
	}
	if buf[16] != 0 {
		t.Fatalf("tombstone flag mismatch: got %d", buf[16])
	}
	if string(buf[17:22]) != "hello" || string(buf[22:27]) != "world" {
		t.Fatalf("payload mismatch: got %q", buf[17:])
	}
}

func TestDecodeCrcMismatch(t *testing.T) {
	buf := Encode(&Record{Key: []byte("a"), Value: []byte("b")})
	buf[0] ^= 0xFF

	_, _, err := Decode(bytes.NewReader(buf), 3, 17, "seg-3.bin")
	if err == nil {
		t.Fatal("expected CrcMismatch error, got nil")
	}

	storageErr, ok := apperrors.AsStorageError(err)
	if !ok {
		t.Fatalf("expected *errors.StorageError, got %T", err)
	}
	if storageErr.Code() != apperrors.ErrorCodeCrcMismatch {
		t.Fatalf("expected ErrorCodeCrcMismatch, got %s", storageErr.Code())
	}
}

func TestDecodeShortRead(t *testing.T) {
	buf := Encode(&Record{Key: []byte("hello"), Value: []byte("world")})
	truncated := buf[:len(buf)-3]

	_, _, err := Decode(bytes.NewReader(truncated), 1, 0, "seg-1.bin")
	if err == nil {
		t.Fatal("expected ShortRead error, got nil")
	}
	storageErr, ok := apperrors.AsStorageError(err)
	if !ok {
		t.Fatalf("expected *errors.StorageError, got %T", err)
	}
	if storageErr.Code() != apperrors.ErrorCodeShortRead {
		t.Fatalf("expected ErrorCodeShortRead, got %s", storageErr.Code())
	}
}

func TestEncodeZeroLengthKeyTolerated(t *testing.T) {
	r := &Record{Key: nil, Value: []byte("v")}
	buf := Encode(r)
	got, _, err := Decode(bytes.NewReader(buf), 1, 0, "seg-1.bin")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Key) != 0 {
		t.Fatalf("expected empty key, got %q", got.Key)
	}
}
