package storage

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ScalarsBucket = []byte("scalars") // encoded key, attempt counters
	BlobsBucket   = []byte("blobs")   // encrypted credential records
)

// Bolt is the BBolt-backed store. It implements both ScalarStore and
// BlobStore over a single database file.
type Bolt struct {
	db *bolt.DB
}

// Open opens or creates a pinguard database and ensures its buckets exist.
func Open(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ScalarsBucket, BlobsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Close closes the database
func (s *Bolt) Close() error {
	return s.db.Close()
}

// Get retrieves a scalar value
func (s *Bolt) Get(key string) ([]byte, error) {
	return s.get(ScalarsBucket, key)
}

// Put stores a scalar value
func (s *Bolt) Put(key string, value []byte) error {
	return s.put(ScalarsBucket, key, value)
}

// Delete removes a scalar value. Absence is not an error.
func (s *Bolt) Delete(key string) error {
	return s.delete(ScalarsBucket, key)
}

// Load retrieves a blob record
func (s *Bolt) Load(name string) ([]byte, error) {
	return s.get(BlobsBucket, name)
}

// Store writes a blob record, overwriting any previous value in a single
// transaction so a failed write leaves the prior record intact.
func (s *Bolt) Store(name string, data []byte) error {
	return s.put(BlobsBucket, name, data)
}

// Remove deletes a blob record. Absence is not an error.
func (s *Bolt) Remove(name string) error {
	return s.delete(BlobsBucket, name)
}

// Has reports whether a blob record exists
func (s *Bolt) Has(name string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BlobsBucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", BlobsBucket)
		}
		found = bucket.Get([]byte(name)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *Bolt) get(bucketName []byte, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		// Make a copy since the slice is only valid during the transaction
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Bolt) put(bucketName []byte, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return bucket.Put([]byte(key), value)
	})
}

func (s *Bolt) delete(bucketName []byte, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return bucket.Delete([]byte(key))
	})
}
