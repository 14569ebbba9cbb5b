package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const entryFileExtension = ".json"

// Common cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
)

// Store is the lookup surface used by the HTTP client.
type Store interface {
	Get(key string) (*Entry, error)
	Set(entry *Entry) error
	Delete(key string) error
}

// FileStore keeps entries as JSON files in a single directory.
// Safe for concurrent use.
type FileStore struct {
	directory string
	ttl       time.Duration

	mu sync.RWMutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at directory, creating it if needed.
func NewFileStore(directory string, ttl time.Duration) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &FileStore{directory: directory, ttl: ttl}, nil
}

// Key derives a store key from its parts. Parts may hold credentials, so
// only their digest ever reaches the filesystem.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// TTL returns the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// Get returns the entry for key. It returns ErrNotFound when nothing is
// stored and ErrExpired when the stored entry is stale; stale entries are
// removed.
func (s *FileStore) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	path := s.path(key)

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal cache entry: %w", err)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set writes entry, replacing any previous entry with the same key.
// An entry without an expiry gets the store's TTL.
func (s *FileStore) Set(entry *Entry) error {
	if entry == nil || entry.Key == "" {
		return ErrInvalidKey
	}
	if entry.ExpiresAt.IsZero() && s.ttl > 0 {
		entry.ExpiresAt = entry.CreatedAt.Add(s.ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(entry.Key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry in the store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != entryFileExtension {
			continue
		}
		if err := os.Remove(filepath.Join(s.directory, f.Name())); err != nil {
			return fmt.Errorf("remove cache file %s: %w", f.Name(), err)
		}
	}
	return nil
}

// Count returns the number of stored entries, expired ones included.
func (s *FileStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("read cache directory: %w", err)
	}
	n := 0
	for _, f := range files {
		if !f.IsDir() && filepath.Ext(f.Name()) == entryFileExtension {
			n++
		}
	}
	return n, nil
}

func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.directory, safe+entryFileExtension)
}
