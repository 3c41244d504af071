package core

import (
	"errors"
	"sync"

	"github.com/illarion/pinguard/internal/crypto"
	"github.com/illarion/pinguard/internal/keys"
	"github.com/illarion/pinguard/internal/storage"
)

// CredentialRecordName is the blob slot holding the encrypted PIN.
const CredentialRecordName = "pin"

// CredentialStore persists the device PIN encrypted under the device key.
// All methods are safe for concurrent use; read-modify-write sequences on
// the stored record run under a single mutex.
type CredentialStore struct {
	mu    sync.Mutex
	keys  *keys.Service
	blobs storage.BlobStore
}

// NewCredentialStore creates a credential store over the given key service
// and blob store.
func NewCredentialStore(keySvc *keys.Service, blobs storage.BlobStore) *CredentialStore {
	return &CredentialStore{keys: keySvc, blobs: blobs}
}

// Save encrypts pin and durably overwrites the stored credential record.
// It returns false without side effects for an empty pin or on any
// key/encryption/storage failure; a failed save leaves the previous
// record, if any, untouched.
func (c *CredentialStore) Save(pin string) bool {
	if pin == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	km := c.obtainKey()
	if km == nil {
		return false
	}
	defer km.Clear()

	plaintext := []byte(pin)
	blob, err := crypto.Encrypt(plaintext, km)
	crypto.ClearBytes(plaintext)
	if err != nil {
		return false
	}

	return c.blobs.Store(CredentialRecordName, blob) == nil
}

// Load returns the stored PIN, or false when there is no recoverable
// credential: no record, inaccessible storage, or a blob that no longer
// decrypts under the current key.
func (c *CredentialStore) Load() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	plaintext, ok := c.load()
	if !ok {
		return "", false
	}
	pin := string(plaintext)
	crypto.ClearBytes(plaintext)
	return pin, true
}

// Verify reports whether candidate matches the stored PIN. The comparison
// is constant-time.
func (c *CredentialStore) Verify(candidate string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	plaintext, ok := c.load()
	if !ok {
		return false
	}
	defer crypto.ClearBytes(plaintext)

	return crypto.ConstantTimeCompare(plaintext, []byte(candidate))
}

// Delete removes the stored credential record. Absence is not an error.
func (c *CredentialStore) Delete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blobs.Remove(CredentialRecordName) == nil
}

// HasStored reports whether a credential record exists, independent of
// whether it would decrypt.
func (c *CredentialStore) HasStored() bool {
	found, err := c.blobs.Has(CredentialRecordName)
	return err == nil && found
}

// load reads and decrypts the stored record. Callers hold c.mu and own the
// returned plaintext.
func (c *CredentialStore) load() ([]byte, bool) {
	blob, err := c.blobs.Load(CredentialRecordName)
	if err != nil {
		return nil, false
	}

	km := c.obtainKey()
	if km == nil {
		return nil, false
	}
	defer km.Clear()

	plaintext, err := crypto.Decrypt(blob, km)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}

// obtainKey fetches the device key, tolerating the degraded-randomness
// warning. Returns nil when no usable key is available.
func (c *CredentialStore) obtainKey() *crypto.KeyMaterial {
	km, err := c.keys.GetOrCreateKey()
	if err != nil && !errors.Is(err, keys.ErrDegradedRandom) {
		if km != nil {
			km.Clear()
		}
		return nil
	}
	return km
}
