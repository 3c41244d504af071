package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	KeySize     = 32                  // AES-256 key size
	NonceSize   = 12                  // GCM nonce size
	TagSize     = 16                  // GCM authentication tag size
	MinBlobSize = NonceSize + TagSize // smallest well-formed blob
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrAuthFailed   = errors.New("authentication failed")
)

// Encrypt seals plaintext under key using AES-256-GCM and returns
// nonce || ciphertext || tag. A fresh random nonce is generated per call,
// so repeated calls with identical inputs produce different blobs.
//
// Empty plaintext is rejected. Keys shorter than 32 bytes are rejected;
// longer keys are truncated to the first 32 bytes for compatibility with
// oversized stored records.
func Encrypt(plaintext []byte, key *KeyMaterial) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrInvalidInput)
	}
	if key == nil || key.Len() < KeySize {
		return nil, fmt.Errorf("%w: key must be at least %d bytes", ErrInvalidInput, KeySize)
	}

	block, err := aes.NewCipher(key.Bytes()[:KeySize])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, NonceSize+len(ciphertext))
	copy(result, nonce)
	copy(result[NonceSize:], ciphertext)

	return result, nil
}

// Decrypt opens a blob produced by Encrypt. It fails with ErrInvalidInput
// on undersized blobs or keys, and with ErrAuthFailed when the tag does not
// verify, which covers corruption anywhere in nonce, ciphertext or tag.
func Decrypt(blob []byte, key *KeyMaterial) ([]byte, error) {
	if len(blob) < MinBlobSize {
		return nil, fmt.Errorf("%w: blob shorter than %d bytes", ErrInvalidInput, MinBlobSize)
	}
	if key == nil || key.Len() < KeySize {
		return nil, fmt.Errorf("%w: key must be at least %d bytes", ErrInvalidInput, KeySize)
	}

	block, err := aes.NewCipher(key.Bytes()[:KeySize])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := blob[:NonceSize]
	ciphertext := blob[NonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}

	return plaintext, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes from the platform CSPRNG
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// ExpandSeed deterministically expands seed into n bytes using a SHA-256
// counter construction. It is not a source of secure randomness; callers
// use it only as a last-resort substitute when the CSPRNG is unavailable
// and must report that degradation.
func ExpandSeed(seed []byte, n int) []byte {
	out := make([]byte, 0, n)
	var counter [4]byte
	for i := uint32(0); len(out) < n; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		h := sha256.New()
		h.Write(seed)
		h.Write(counter[:])
		out = h.Sum(out)
	}
	return out[:n]
}
