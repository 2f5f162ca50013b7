package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store is a file-backed key-value blob store. It mirrors the persistence the
// storefront needs: a handful of named JSON values ("user", "cart") that
// survive restarts. Every Put rewrites the file, so state is never stale on
// disk. A store instance is owned by the running application and handed to
// the components that need it.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// Open loads the store file at path. A missing file, unreadable file or
// unparsable content all yield an empty store: corrupted state is discarded,
// never surfaced as an error to callers.
func Open(path string) *Store {
	s := &Store{path: path, data: map[string]json.RawMessage{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = map[string]json.RawMessage{}
	}
	return s
}

// Get unmarshals the value stored under key into v. It reports false when the
// key is absent or the stored value does not parse into v.
func (s *Store) Get(key string, v any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Put serializes v under key and rewrites the backing file.
func (s *Store) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

// Delete removes key and rewrites the backing file. Deleting an absent key is
// a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}
