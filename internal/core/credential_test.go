package core

import (
	"testing"

	"github.com/illarion/pinguard/internal/keys"
	"github.com/illarion/pinguard/internal/storage"
)

func newTestCredStore() (*CredentialStore, *keys.Service, *storage.Memory) {
	mem := storage.NewMemory()
	keySvc := keys.NewService(mem, "/tmp/test.pinguard.db")
	return NewCredentialStore(keySvc, mem), keySvc, mem
}

func TestSaveVerifyScenario(t *testing.T) {
	creds, _, _ := newTestCredStore()

	if !creds.Save("1234") {
		t.Fatal("Save failed")
	}
	if !creds.HasStored() {
		t.Error("HasStored false after save")
	}
	if !creds.Verify("1234") {
		t.Error("Verify rejected the correct PIN")
	}
	if creds.Verify("9999") {
		t.Error("Verify accepted a wrong PIN")
	}
}

func TestSaveEmptyPINLeavesRecord(t *testing.T) {
	creds, _, _ := newTestCredStore()

	if !creds.Save("1234") {
		t.Fatal("Save failed")
	}
	if creds.Save("") {
		t.Error("Save accepted an empty PIN")
	}

	// Prior record is untouched
	if !creds.Verify("1234") {
		t.Error("Prior PIN lost after rejected empty save")
	}
}

func TestSaveOverwrites(t *testing.T) {
	creds, _, _ := newTestCredStore()

	if !creds.Save("1234") {
		t.Fatal("First save failed")
	}
	if !creds.Save("5678") {
		t.Fatal("Second save failed")
	}
	if creds.Verify("1234") {
		t.Error("Old PIN still verifies after overwrite")
	}
	if !creds.Verify("5678") {
		t.Error("New PIN does not verify")
	}
}

func TestLoad(t *testing.T) {
	creds, _, _ := newTestCredStore()

	if _, ok := creds.Load(); ok {
		t.Error("Load reported a credential before any save")
	}

	if !creds.Save("4321") {
		t.Fatal("Save failed")
	}
	pin, ok := creds.Load()
	if !ok {
		t.Fatal("Load failed after save")
	}
	if pin != "4321" {
		t.Errorf("Loaded PIN mismatch: got %q", pin)
	}
}

func TestDelete(t *testing.T) {
	creds, _, _ := newTestCredStore()

	if !creds.Save("1234") {
		t.Fatal("Save failed")
	}
	if !creds.Delete() {
		t.Error("Delete failed")
	}
	if creds.HasStored() {
		t.Error("Record still present after delete")
	}
	if creds.Verify("1234") {
		t.Error("Verify succeeded after delete")
	}

	// Deleting an absent record is not an error
	if !creds.Delete() {
		t.Error("Delete of absent record failed")
	}
}

func TestLoadAfterKeyReset(t *testing.T) {
	creds, keySvc, _ := newTestCredStore()

	if !creds.Save("1234") {
		t.Fatal("Save failed")
	}
	if err := keySvc.ResetKey(); err != nil {
		t.Fatalf("ResetKey failed: %v", err)
	}

	// The blob survives but is unrecoverable under the new key
	if !creds.HasStored() {
		t.Error("HasStored false after key reset")
	}
	if _, ok := creds.Load(); ok {
		t.Error("Load recovered a credential encrypted under the old key")
	}
	if creds.Verify("1234") {
		t.Error("Verify succeeded with a rotated key")
	}
}

func TestHasStoredIndependentOfDecrypt(t *testing.T) {
	creds, _, mem := newTestCredStore()

	// A well-sized but garbage blob: present, never decrypts
	garbage := make([]byte, 40)
	for i := range garbage {
		garbage[i] = byte(i)
	}
	if err := mem.Store(CredentialRecordName, garbage); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if !creds.HasStored() {
		t.Error("HasStored false for an undecryptable record")
	}
	if _, ok := creds.Load(); ok {
		t.Error("Load recovered plaintext from a garbage blob")
	}
}
