// Package kvstore is the device-local persistent key-value store.
//
// Each key is one file under a data directory (~/.bodega by default).
// Writes are atomic (temp file + rename) so a crash mid-write never leaves a
// torn value behind. Every manager owns a disjoint set of keys; the store
// itself only guards concurrent access with a single mutex.
//
// Sensitive values (the bearer token) go through PutSealed/GetSealed, which
// wrap pkg/crypt so the plaintext never touches disk.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shashiranjanraj/bodega/pkg/crypt"
)

// Store is a file-per-key string store rooted at a single directory.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open creates the data directory if needed and returns a Store over it.
func Open(dir string) (*Store, error) {
	if !filepath.IsAbs(dir) {
		cwd, _ := os.Getwd()
		dir = filepath.Join(cwd, dir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the absolute data directory backing the store.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key))
}

// sanitize maps a key to a safe file name. Keys are simple identifiers
// ("auth_token", "cart_items"); anything path-like is flattened.
func sanitize(key string) string {
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return strings.ReplaceAll(key, "..", "_")
}

// Put writes value under key atomically.
func (s *Store) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	full := s.path(key)
	tmp, err := os.CreateTemp(s.dir, sanitize(key)+".tmp*")
	if err != nil {
		return fmt.Errorf("kvstore: temp %s: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("kvstore: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("kvstore: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("kvstore: rename %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ("", false) when absent.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Has reports whether key exists.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kvstore: delete %s: %w", key, err)
	}
	return nil
}

// DeleteAll removes every listed key, keeping the first error.
// Used by logout to drop the token and user record together.
func (s *Store) DeleteAll(keys ...string) error {
	var first error
	for _, k := range keys {
		if err := s.Delete(k); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// PutJSON marshals v and stores it under key.
func (s *Store) PutJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore: marshal %s: %w", key, err)
	}
	return s.Put(key, string(raw))
}

// GetJSON reads key and unmarshals it into dest.
// Returns false when the key is absent or holds invalid JSON.
func (s *Store) GetJSON(key string, dest interface{}) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// PutSealed encrypts value before storing it.
func (s *Store) PutSealed(key, value string) error {
	sealed, err := crypt.Encrypt(value)
	if err != nil {
		return fmt.Errorf("kvstore: seal %s: %w", key, err)
	}
	return s.Put(key, sealed)
}

// GetSealed reads and decrypts a value written by PutSealed.
// A missing key or an undecryptable value both report absence: a value we
// cannot authenticate is treated the same as no value at all.
func (s *Store) GetSealed(key string) (string, bool) {
	sealed, ok := s.Get(key)
	if !ok {
		return "", false
	}
	plain, err := crypt.Decrypt(sealed)
	if err != nil {
		return "", false
	}
	return plain, true
}
