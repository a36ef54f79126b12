// Package session persists the auth session across runs. It is the only
// thing the client ever writes to disk besides logs; content and filter
// state are deliberately per-session and in-memory.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"akiba/internal/api"
)

var sessionBucket = []byte("session")

var currentKey = []byte("current")

// ErrNoSession means no usable session is stored: never logged in, logged
// out, or the stored token has expired.
var ErrNoSession = errors.New("no active session")

type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(sessionBucket)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session.
func (s *Store) Save(session *api.Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(session)
		if err != nil {
			return err
		}
		return tx.Bucket(sessionBucket).Put(currentKey, data)
	})
}

// Load returns the stored session. An expired session is treated as absent
// and removed, so callers only ever see a token worth presenting.
func (s *Store) Load() (*api.Session, error) {
	var session api.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionBucket).Get(currentKey)
		if data == nil {
			return ErrNoSession
		}
		return json.Unmarshal(data, &session)
	})
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		_ = s.Delete()
		return nil, ErrNoSession
	}

	return &session, nil
}

// Delete removes the stored session. Deleting an absent session is fine.
func (s *Store) Delete() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(currentKey)
	})
}
