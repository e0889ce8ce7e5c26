// Package store provides the BoltDB-backed geocode cache.
//
// BoltDB is an embedded key/value store: the cache lives in a single file and
// no external database process is required. Each geocoded place is stored
// once under its normalized "city|country" key.
//
// Idempotency
// -----------
// Every write is safe to repeat with the same arguments:
//   - Create: checks for an existing record before inserting. If the key is
//     present the stored entry is returned unchanged and nothing is written,
//     so two concurrent lookups of the same place agree on one result.
//   - Update: compares the incoming geocode with the stored one and skips
//     the write when they describe the same place.
//   - Delete: removing a missing key succeeds.
package store

import (
	"encoding/json"
	"errors"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/charleschoi123/bazi-destiny/models"
)

const bucketName = "geocodes"

// ErrNotFound is returned when a requested cache entry does not exist.
var ErrNotFound = errors.New("geocode entry not found")

// Store wraps a BoltDB database holding geocode entries. All operations are
// idempotent and safe for concurrent use; BoltDB serializes writers.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) a BoltDB database at the given path and ensures the
// geocodes bucket exists.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every cached entry in key order.
func (s *Store) List() ([]models.GeocodeEntry, error) {
	var items []models.GeocodeEntry

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var e models.GeocodeEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			items = append(items, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Empty slice, not nil, so the JSON encoder emits [] instead of null.
	if items == nil {
		items = []models.GeocodeEntry{}
	}
	return items, nil
}

// Get retrieves a single entry by key.
// Returns ErrNotFound if the key does not exist.
func (s *Store) Get(key string) (*models.GeocodeEntry, error) {
	var e models.GeocodeEntry

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// Create persists e ONLY if no entry with the same key exists.
//
// Returns (existing, false, nil) when the key was already cached; the first
// write wins. Returns (new, true, nil) when the entry was stored.
func (s *Store) Create(e *models.GeocodeEntry) (*models.GeocodeEntry, bool, error) {
	if e.Key == "" {
		return nil, false, errors.New("geocode entry has no key")
	}

	var result models.GeocodeEntry
	created := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		if existing := b.Get([]byte(e.Key)); existing != nil {
			return json.Unmarshal(existing, &result)
		}

		now := time.Now().UTC()
		e.CreatedAt = now
		e.UpdatedAt = now

		data, err := json.Marshal(e)
		if err != nil {
			return err
		}

		result = *e
		created = true
		return b.Put([]byte(e.Key), data)
	})
	if err != nil {
		return nil, false, err
	}

	return &result, created, nil
}

// Update replaces the geocode stored under key ONLY if incoming describes a
// different place (see models.GeocodeEntry.SamePlace).
//
// Returns (updated, true, nil) when a write occurred and (existing, false,
// nil) when the payload matched and the write was skipped.
func (s *Store) Update(key string, incoming *models.GeocodeEntry) (*models.GeocodeEntry, bool, error) {
	var result models.GeocodeEntry
	written := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		existingBytes := b.Get([]byte(key))
		if existingBytes == nil {
			return ErrNotFound
		}

		var existing models.GeocodeEntry
		if err := json.Unmarshal(existingBytes, &existing); err != nil {
			return err
		}

		if existing.SamePlace(*incoming) {
			result = existing
			return nil
		}

		existing.Lat = incoming.Lat
		existing.Lon = incoming.Lon
		existing.CountryCode = incoming.CountryCode
		existing.Display = incoming.Display
		existing.Zone = incoming.Zone
		existing.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(existing)
		if err != nil {
			return err
		}

		written = true
		result = existing
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return nil, false, err
	}

	return &result, written, nil
}

// Delete removes an entry by key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Delete([]byte(key))
	})
}
