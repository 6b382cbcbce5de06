// Package store persists the last successfully built snapshot and the last
// remote usage report in a BoltDB file, so a restart can show real (if
// stale) numbers before the first refresh completes.
//
// The stats cache itself is never written here; its format belongs to the
// external producer.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bolt "go.etcd.io/bbolt"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

var (
	bucketSnapshots = []byte("snapshots")
	bucketRemote    = []byte("remote_usage")
	keyLatest       = []byte("latest")
)

// Store persists refresh results across process restarts.
type Store interface {
	// SaveSnapshot stores snap as the latest snapshot.
	SaveSnapshot(snap *snapshot.Snapshot) error

	// LatestSnapshot returns the last stored snapshot, or ErrNoSnapshot
	// when nothing has been stored yet.
	LatestSnapshot() (*snapshot.Snapshot, error)

	// SaveRemoteUsage stores usage as the latest remote usage report.
	SaveRemoteUsage(usage *webusage.Usage) error

	// LatestRemoteUsage returns the last stored remote usage report, or
	// ErrNoRemoteUsage when nothing has been stored yet.
	LatestRemoteUsage() (*webusage.Usage, error)

	// Close releases the underlying database.
	Close() error
}

// boltStore implements Store using BoltDB.
type boltStore struct {
	db *bolt.DB
	mu sync.RWMutex
}

// Open opens (creating if necessary) the store at path.
//
// Parent directories are created as needed. The database is opened with a
// file lock; a second process opening the same path blocks.
func Open(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSnapshots, bucketRemote} {
			if _, createErr := tx.CreateBucketIfNotExists(name); createErr != nil {
				return createErr
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create store buckets: %w", err)
	}

	return &boltStore{db: db}, nil
}

// SaveSnapshot implements Store.SaveSnapshot.
func (s *boltStore) SaveSnapshot(snap *snapshot.Snapshot) error {
	if snap == nil {
		return ErrNilValue
	}
	return s.put(bucketSnapshots, snap)
}

// LatestSnapshot implements Store.LatestSnapshot.
func (s *boltStore) LatestSnapshot() (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	ok, err := s.get(bucketSnapshots, &snap)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSnapshot
	}
	return &snap, nil
}

// SaveRemoteUsage implements Store.SaveRemoteUsage.
func (s *boltStore) SaveRemoteUsage(usage *webusage.Usage) error {
	if usage == nil {
		return ErrNilValue
	}
	return s.put(bucketRemote, usage)
}

// LatestRemoteUsage implements Store.LatestRemoteUsage.
func (s *boltStore) LatestRemoteUsage() (*webusage.Usage, error) {
	var usage webusage.Usage
	ok, err := s.get(bucketRemote, &usage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRemoteUsage
	}
	return &usage, nil
}

// Close implements Store.Close.
func (s *boltStore) Close() error {
	return s.db.Close()
}

func (s *boltStore) put(bucket []byte, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
		if putErr := tx.Bucket(bucket).Put(keyLatest, data); putErr != nil {
			return fmt.Errorf("failed to store value: %w", putErr)
		}
		return nil
	})
}

func (s *boltStore) get(bucket []byte, out interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get(keyLatest)
		if data == nil {
			return nil
		}
		if unmarshalErr := json.Unmarshal(data, out); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal stored value: %w", unmarshalErr)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
