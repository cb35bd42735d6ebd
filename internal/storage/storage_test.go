package storage

import (
	"os"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "c4solver-store-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t)

	rec := Record{History: "1234", MovesPlayed: 4, Value: 7, Nodes: 1024}
	if err := s.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := s.Get("1234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if got != rec {
		t.Fatalf("Get returned %+v, want %+v", got, rec)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Get("7654321")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected no record for an unstored history")
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(Record{History: "11", MovesPlayed: 2, Value: 3}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(Record{History: "11", MovesPlayed: 2, Value: 9}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := s.Get("11")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if got.Value != 9 {
		t.Fatalf("Value = %d, want 9 (overwritten)", got.Value)
	}
}

func TestStoreCountAndEach(t *testing.T) {
	s := openTestStore(t)

	histories := []string{"1", "2", "3", "4"}
	for i, h := range histories {
		if err := s.Put(Record{History: h, MovesPlayed: 1, Value: i}); err != nil {
			t.Fatalf("Put(%q): %v", h, err)
		}
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != len(histories) {
		t.Fatalf("Count = %d, want %d", n, len(histories))
	}

	seen := map[string]bool{}
	err = s.Each(func(rec Record) error {
		seen[rec.History] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	for _, h := range histories {
		if !seen[h] {
			t.Fatalf("Each did not visit history %q", h)
		}
	}
}
