// Package store journals pipeline runs in a local BoltDB file so past
// extractions can be inspected after the fact.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// RunRecord captures one pipeline run.
type RunRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Artifact   string    `json:"artifact"`
	Pages      int       `json:"pages"`
	EmptyPages int       `json:"empty_pages"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Runs is a BoltDB-backed journal of pipeline runs.
type Runs struct {
	db *bolt.DB
	mu sync.RWMutex
}

// Open initializes the journal database, creating the file and its parent
// directory as needed.
func Open(path string) (*Runs, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for run store: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Runs{db: db}, nil
}

// Put records a run, keyed by its ID.
func (s *Runs) Put(rec RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode run record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		return b.Put([]byte(rec.ID), data)
	})
}

// Get fetches a run record by ID.
func (s *Runs) Get(id string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec RunRecord
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		v := b.Get([]byte(id))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	return rec, found, err
}

// List returns all recorded runs.
func (s *Runs) List() ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []RunRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		return b.ForEach(func(_, v []byte) error {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	})
	return recs, err
}

// Close closes the journal database.
func (s *Runs) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
