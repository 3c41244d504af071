// Package crypto provides the cryptographic primitives for pinguard.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte device-bound key (see internal/keys)
//   - 12-byte random nonce per encryption operation
//   - 16-byte authentication tag covering nonce and ciphertext
//
// The wire format is nonce || ciphertext || tag, minimum 28 bytes.
// Any single-bit corruption anywhere in a blob makes Decrypt fail;
// partially decrypted data is never returned.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call KeyMaterial.Clear() when key material is no longer needed
package crypto
