package ignitedb

import (
	"testing"

	"github.com/ignitedb/ignitedb/pkg/options"
)

func TestOpenPutGetDeleteClose(t *testing.T) {
	dir := t.TempDir()
	db, err := Open("ignitedb-test", options.WithDataDir(dir), options.WithSegmentSize(1000))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	value, live, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !live || string(value) != "v" {
		t.Fatalf("expected k=v live, got %q live=%v", value, live)
	}

	if err := db.Delete([]byte("k")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, live, err := db.Get([]byte("k")); err != nil || live {
		t.Fatalf("expected absent after delete, live=%v err=%v", live, err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Compact: %v", err)
	}
}
