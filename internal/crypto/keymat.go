package crypto

import (
	"encoding/base64"
	"fmt"
)

// KeyMaterial holds raw key bytes together with their canonical base64
// encoding. Both forms stay consistent for the lifetime of the instance.
// Clear is a terminal transition: a cleared KeyMaterial cannot be reused.
type KeyMaterial struct {
	raw     []byte
	encoded string
}

// NewKeyMaterial wraps a copy of raw key bytes.
func NewKeyMaterial(raw []byte) *KeyMaterial {
	buf := append([]byte(nil), raw...)
	return &KeyMaterial{
		raw:     buf,
		encoded: base64.StdEncoding.EncodeToString(buf),
	}
}

// DecodeKeyMaterial rebuilds key material from its stored base64 form.
func DecodeKeyMaterial(encoded string) (*KeyMaterial, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed key encoding", ErrInvalidInput)
	}
	return &KeyMaterial{raw: raw, encoded: encoded}, nil
}

// Bytes returns the raw key bytes. The slice is owned by the KeyMaterial
// and becomes invalid after Clear.
func (k *KeyMaterial) Bytes() []byte {
	return k.raw
}

// Encoded returns the canonical base64 representation.
func (k *KeyMaterial) Encoded() string {
	return k.encoded
}

// Len returns the raw key length in bytes.
func (k *KeyMaterial) Len() int {
	return len(k.raw)
}

// Clear zeroes the raw bytes and drops the encoded form.
func (k *KeyMaterial) Clear() {
	ClearBytes(k.raw)
	k.raw = nil
	k.encoded = ""
}
