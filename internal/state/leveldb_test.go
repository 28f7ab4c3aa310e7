package state

import (
	"errors"
	"testing"
)

func TestLevelDBRoundTrip(t *testing.T) {
	db, err := NewLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}

	if err := db.Set([]byte("a:1"), []byte("one")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.Get([]byte("a:1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "one" {
		t.Fatalf("value = %q, want one", got)
	}

	if err := db.Delete([]byte("a:1")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Get([]byte("a:1")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get deleted = %v, want ErrNotFound", err)
	}
}

func TestLevelDBBatchAndIterator(t *testing.T) {
	db, err := NewLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	b := db.NewBatch()
	b.Set([]byte("p:01"), []byte("x"))
	b.Set([]byte("p:02"), []byte("y"))
	b.Set([]byte("q:01"), []byte("z"))
	if err := b.Write(); err != nil {
		t.Fatalf("batch write: %v", err)
	}

	it := db.NewIterator([]byte("p:"))
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	if err := it.Error(); err != nil {
		t.Fatalf("iterator: %v", err)
	}
	if len(keys) != 2 || keys[0] != "p:01" || keys[1] != "p:02" {
		t.Fatalf("keys = %v", keys)
	}
}
