// Package keys derives and persists the device-bound encryption key.
//
// The key is produced by PBKDF2-HMAC-SHA256 over the device fingerprint
// with a salt mixed from fresh random bytes, a hash of the store path and
// a hash of the fingerprint. The salt is rebuilt on every derivation, so
// GenerateKey alone is non-deterministic; stability across runs comes from
// persisting the derived key in the injected scalar store.
package keys

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/illarion/pinguard/internal/crypto"
	"github.com/illarion/pinguard/internal/device"
	"github.com/illarion/pinguard/internal/storage"
)

const (
	// KeyRecordName is the scalar slot holding the encoded device key.
	KeyRecordName = "device_key"

	// Iterations is the PBKDF2 round count.
	Iterations = 100000

	// SaltSize is the salt length in bytes.
	SaltSize = 32
)

// ErrDegradedRandom reports that salt generation fell back to a
// deterministic expansion because the CSPRNG was unavailable. The key
// returned alongside it is still usable; callers decide whether the
// downgrade is acceptable.
var ErrDegradedRandom = errors.New("salt generated without secure randomness")

// Service derives the device-bound key and manages its persisted record.
type Service struct {
	store       storage.ScalarStore
	storePath   string
	fingerprint func() string
	random      func(int) ([]byte, error)
}

// NewService creates a key service persisting into store. storePath is an
// application-private path mixed into the salt.
func NewService(store storage.ScalarStore, storePath string) *Service {
	return &Service{
		store:       store,
		storePath:   storePath,
		fingerprint: device.Fingerprint,
		random:      crypto.GenerateRandom,
	}
}

// GetOrCreateKey returns the persisted device key, generating and
// persisting a new one on first use. A non-nil key may be returned together
// with ErrDegradedRandom; every other error means no usable key.
func (s *Service) GetOrCreateKey() (*crypto.KeyMaterial, error) {
	record, err := s.store.Get(KeyRecordName)
	if err == nil {
		km, err := crypto.DecodeKeyMaterial(string(record))
		if err != nil {
			return nil, fmt.Errorf("stored key record is corrupt: %w", err)
		}
		return km, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to read key record: %w", err)
	}

	km, degraded := s.GenerateKey()
	if err := s.store.Put(KeyRecordName, []byte(km.Encoded())); err != nil {
		km.Clear()
		return nil, fmt.Errorf("failed to persist key record: %w", err)
	}
	return km, degraded
}

// GenerateKey derives a fresh 32-byte key without persisting it.
// Derivation itself cannot fail; the only non-nil return error is
// ErrDegradedRandom, and the key is valid even then.
func (s *Service) GenerateKey() (*crypto.KeyMaterial, error) {
	salt, degraded := s.buildSalt()

	key := pbkdf2.Key([]byte(s.fingerprint()), salt, Iterations, crypto.KeySize, sha256.New)
	km := crypto.NewKeyMaterial(key)
	crypto.ClearBytes(key)
	crypto.ClearBytes(salt)

	return km, degraded
}

// ResetKey deletes the persisted key record. Every credential encrypted
// under the old key becomes permanently unrecoverable; callers rotating the
// key must delete or re-save dependent credentials themselves.
func (s *Service) ResetKey() error {
	if err := s.store.Delete(KeyRecordName); err != nil {
		return fmt.Errorf("failed to delete key record: %w", err)
	}
	return nil
}

// buildSalt hashes together fresh random bytes, a hash of the store path
// and a hash of the device fingerprint. On CSPRNG failure the random
// component is substituted with a deterministic expansion of local inputs
// and ErrDegradedRandom is reported.
func (s *Service) buildSalt() ([]byte, error) {
	var degraded error
	random, err := s.random(SaltSize)
	if err != nil {
		seed := make([]byte, 0, 64)
		seed = append(seed, []byte(s.fingerprint())...)
		seed = append(seed, []byte(s.storePath)...)
		seed = binary.BigEndian.AppendUint64(seed, uint64(time.Now().UnixNano()))
		random = crypto.ExpandSeed(seed, SaltSize)
		degraded = fmt.Errorf("%w: %v", ErrDegradedRandom, err)
	}

	pathSum := sha256.Sum256([]byte(s.storePath))
	fpSum := sha256.Sum256([]byte(s.fingerprint()))

	h := sha256.New()
	h.Write(random)
	h.Write(pathSum[:])
	h.Write(fpSum[:])
	return h.Sum(nil), degraded
}
