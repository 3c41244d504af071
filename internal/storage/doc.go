// Package storage provides the persistence interfaces and implementations
// for pinguard.
//
// Two narrow interfaces cover everything the core needs:
//   - ScalarStore: small named values (encoded key, attempt counters)
//   - BlobStore: the encrypted credential record
//
// The production implementation is a single BBolt file with two buckets
// (scalars, blobs). An in-memory implementation backs tests and embedding.
// Both interfaces are injected into the components that use them, so a
// hardware-backed secret store can be substituted without touching core
// logic (see internal/keyring for the OS keyring ScalarStore).
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
