// Package capture persists decoded frames for later inspection. It is
// the storage side of the framewire CLI's capture mode: every frame
// pulled off a connection is appended under a time-ordered key, so a
// dump replays the session in roughly arrival order.
package capture

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Store is a pebble-backed frame archive. Keys are KSUIDs, which sort
// by creation time at second granularity, so iteration order tracks
// arrival order.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if necessary) a capture store at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Append stores one frame payload and returns its generated ID.
func (s *Store) Append(payload []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), payload, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("capture: append: %w", err)
	}
	return id, nil
}

// Get returns the payload stored under id.
func (s *Store) Get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		return nil, fmt.Errorf("capture: get %s: %w", id, err)
	}
	defer closer.Close()

	payload := make([]byte, len(data))
	copy(payload, data)
	return payload, nil
}

// Walk calls fn for every captured frame in key order. Returning an
// error from fn stops the walk and propagates the error.
func (s *Store) Walk(fn func(id ksuid.KSUID, payload []byte) error) error {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("capture: iterate: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return fmt.Errorf("capture: malformed key: %w", err)
		}
		payload := make([]byte, len(iter.Value()))
		copy(payload, iter.Value())
		if err := fn(id, payload); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Count returns the number of captured frames.
func (s *Store) Count() (int, error) {
	var n int
	err := s.Walk(func(ksuid.KSUID, []byte) error {
		n++
		return nil
	})
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
