package history

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketHistory = []byte("history")
	keyEntries    = []byte("entries")
)

// BoltStore implements Store over a bbolt file. The full collection lives
// as one JSON document under a single key, mirroring the read pattern: the
// list is always loaded whole.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) a bbolt-backed history store at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(bucketHistory)
		return createErr
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// List implements Store.List.
func (s *BoltStore) List() ([]Entry, error) {
	var entries []Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketHistory).Get(keyEntries)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode history collection: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Append implements Store.Append.
func (s *BoltStore) Append(e Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)

		var entries []Entry
		if data := b.Get(keyEntries); data != nil {
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("decode history collection: %w", err)
			}
		}

		entries = append(entries, e)
		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode history collection: %w", err)
		}
		return b.Put(keyEntries, data)
	})
}

// Remove implements Store.Remove.
func (s *BoltStore) Remove(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)

		var entries []Entry
		if data := b.Get(keyEntries); data != nil {
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("decode history collection: %w", err)
			}
		}

		kept := entries[:0]
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(entries) {
			return ErrNotFound
		}

		data, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("encode history collection: %w", err)
		}
		return b.Put(keyEntries, data)
	})
}
