package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *BlobStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openTemp(t)
	data, ok, err := s.Get("nothing")
	if err != nil || ok || data != nil {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}
}

func TestPutGetOverwrite(t *testing.T) {
	s := openTemp(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Put("tasks", []byte(`[1]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put("tasks", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, ok, err := s.Get("tasks")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %v", ok, err)
	}
	if string(data) != "[1,2]" {
		t.Errorf("data = %q, want last write", data)
	}

	at, ok, err := s.UpdatedAt("tasks")
	if err != nil || !ok || !at.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, %v, %v", at, ok, err)
	}

	if _, ok, err := s.UpdatedAt("missing"); err != nil || ok {
		t.Errorf("UpdatedAt(missing) = %v, %v", ok, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("templates", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok, err := s.Get("templates"); err != nil || !ok {
		t.Fatalf("Get after reopen: %v, %v", ok, err)
	}
}
