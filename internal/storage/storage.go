package storage

import "errors"

// ErrNotFound reports an absent record. Implementations return it from Get
// and Load; Delete and Remove treat absence as success.
var ErrNotFound = errors.New("record not found")

// ScalarStore persists small named values such as the encoded device key
// and the failed-attempt counters.
type ScalarStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// BlobStore persists the encrypted credential record.
type BlobStore interface {
	Load(name string) ([]byte, error)
	Store(name string, data []byte) error
	Remove(name string) error
	Has(name string) (bool, error)
}
