// Package store persists render sessions between CLI invocations so that
// each invocation is one more render pass over the same scene.
package store

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/rohankatakam/codeviz/internal/errors"
	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/state"
)

const bucketName = "sessions"

// ErrNotFound is returned when no session has the requested id.
var ErrNotFound = stderrors.New("session not found")

// Session is the last view state drawn and the scene it produced.
type Session struct {
	ID        string          `json:"id"`
	Dataset   string          `json:"dataset"`
	State     state.ViewState `json:"state"`
	Scene     scene.Snapshot  `json:"scene"`
	Passes    int             `json:"passes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSession starts a session for a dataset under a fresh id.
func NewSession(dataset string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is a bbolt-backed session table.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.FileSystemErrorf(err, "failed to create store directory for %s", path)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.StorageError(err, "failed to open session store").WithContext("path", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, errors.StorageError(err, "failed to create sessions bucket")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get loads a session by id.
func (s *Store) Get(id string) (*Session, error) {
	var sess Session
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &sess)
	})
	if stderrors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, errors.StorageError(err, "failed to read session").WithContext("id", id)
	}
	return &sess, nil
}

// Put saves a session, stamping its update time.
func (s *Store) Put(sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, errors.SeverityHigh, "failed to encode session")
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(sess.ID), data)
	}); err != nil {
		return errors.StorageError(err, "failed to write session").WithContext("id", sess.ID)
	}
	return nil
}

// List returns every session, most recently updated first.
func (s *Store) List() ([]*Session, error) {
	var out []*Session
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return err
			}
			out = append(out, &sess)
			return nil
		})
	})
	if err != nil {
		return nil, errors.StorageError(err, "failed to list sessions")
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(id))
	}); err != nil {
		return errors.StorageError(err, "failed to delete session").WithContext("id", id)
	}
	return nil
}

// Clear removes every session and returns how many there were.
func (s *Store) Clear() (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketName)).ForEach(func(_, _ []byte) error {
			n++
			return nil
		}); err != nil {
			return err
		}
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return 0, errors.StorageError(err, "failed to clear sessions")
	}
	return n, nil
}
