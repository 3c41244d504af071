// Package keyring adapts the OS keyring to the storage.ScalarStore
// interface so the device key record can live in an OS-protected secret
// store instead of the database file.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/illarion/pinguard/internal/storage"
)

const serviceName = "pinguard"

// Store is a storage.ScalarStore backed by the OS keyring.
type Store struct {
	service string
}

// New creates a keyring store under the pinguard service name
func New() *Store {
	return &Store{service: serviceName}
}

// Get retrieves a value from the OS keyring
func (s *Store) Get(key string) ([]byte, error) {
	value, err := keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read from keyring: %w", err)
	}
	return []byte(value), nil
}

// Put stores a value in the OS keyring
func (s *Store) Put(key string, value []byte) error {
	if err := keyring.Set(s.service, key, string(value)); err != nil {
		return fmt.Errorf("failed to write to keyring: %w", err)
	}
	return nil
}

// Delete removes a value from the OS keyring. Absence is not an error.
func (s *Store) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
