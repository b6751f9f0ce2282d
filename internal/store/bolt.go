package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// FileName is the planner database file inside the board directory.
const FileName = "planner.db"

const defaultBucket = "planner"

// Bolt is a KV backed by a single bbolt bucket.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (creating if needed) the database at path and ensures the
// bucket exists. An empty bucket name selects the default bucket.
func OpenBolt(path, bucket string) (*Bolt, error) {
	if bucket == "" {
		bucket = defaultBucket
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket %q: %w", bucket, err)
	}

	return &Bolt{db: db, bucket: []byte(bucket)}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (b *Bolt) Get(key string) ([]byte, error) {
	if b == nil || b.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.bucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

// Set stores value under key.
func (b *Bolt) Set(key string, value []byte) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put([]byte(key), value)
	})
}

// Close closes the database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
