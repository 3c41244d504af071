package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func openTestBolt(t *testing.T) *Bolt {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.pinguard.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBoltScalars(t *testing.T) {
	db := openTestBolt(t)

	if _, err := db.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing scalar, got %v", err)
	}

	if err := db.Put("device_key", []byte("encoded-key")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := db.Get("device_key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(value, []byte("encoded-key")) {
		t.Errorf("Scalar mismatch: got %q", value)
	}

	if err := db.Delete("device_key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := db.Get("device_key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent scalar is not an error
	if err := db.Delete("device_key"); err != nil {
		t.Errorf("Delete of absent scalar failed: %v", err)
	}
}

func TestBoltBlobs(t *testing.T) {
	db := openTestBolt(t)

	if _, err := db.Load("pin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing blob, got %v", err)
	}
	found, err := db.Has("pin")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if found {
		t.Error("Has reported a blob that was never stored")
	}

	blob := []byte{1, 2, 3, 4, 5}
	if err := db.Store("pin", blob); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	loaded, err := db.Load("pin")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(loaded, blob) {
		t.Errorf("Blob mismatch: got %v, want %v", loaded, blob)
	}

	// Overwrite replaces the record
	if err := db.Store("pin", []byte{9}); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	loaded, err = db.Load("pin")
	if err != nil {
		t.Fatalf("Load after overwrite failed: %v", err)
	}
	if !bytes.Equal(loaded, []byte{9}) {
		t.Errorf("Overwritten blob mismatch: got %v", loaded)
	}

	if err := db.Remove("pin"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	found, err = db.Has("pin")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if found {
		t.Error("Blob still present after Remove")
	}

	// Removing an absent blob is not an error
	if err := db.Remove("pin"); err != nil {
		t.Errorf("Remove of absent blob failed: %v", err)
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pinguard.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Put("device_key", []byte("encoded")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	value, err := db.Get("device_key")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(value) != "encoded" {
		t.Errorf("Scalar mismatch after reopen: got %q", value)
	}
}
