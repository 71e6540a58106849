package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys shared by every TokenStore
const (
	TokenKey = "token"
	UserKey  = "user"
)

// TokenStore persists the session token, the logged-in user and small UI
// preferences.
type TokenStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
	Token() string
	User() *User
}

// SaveSession stores token and user in s.
func SaveSession(s TokenStore, token string, user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.Set(TokenKey, token); err != nil {
		return err
	}
	return s.Set(UserKey, string(raw))
}

// ClearSession removes token and user from s.
func ClearSession(s TokenStore) error {
	return s.Delete(TokenKey, UserKey)
}

func userFrom(raw string, ok bool) *User {
	if !ok || raw == "" {
		return nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// MemoryStore keeps values for the life of the process
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *MemoryStore) Token() string {
	v, _ := m.Get(TokenKey)
	return v
}

func (m *MemoryStore) User() *User {
	return userFrom(m.Get(UserKey))
}

// FileStore is a MemoryStore mirrored to a JSON file after every write
type FileStore struct {
	path string
	mem  *MemoryStore
	mu   sync.Mutex
}

// OpenFileStore loads path if it exists. A missing file starts empty.
func OpenFileStore(path string) (*FileStore, error) {
	fstore := &FileStore{path: path, mem: NewMemoryStore()}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fstore, nil
	case err != nil:
		return nil, fmt.Errorf("read token store: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fstore.mem.values); err != nil {
			return nil, fmt.Errorf("parse token store %s: %w", path, err)
		}
	}
	return fstore, nil
}

func (f *FileStore) Get(key string) (string, bool) { return f.mem.Get(key) }
func (f *FileStore) Token() string                 { return f.mem.Token() }
func (f *FileStore) User() *User                   { return f.mem.User() }

func (f *FileStore) Set(key, value string) error {
	_ = f.mem.Set(key, value)
	return f.flush()
}

func (f *FileStore) Delete(keys ...string) error {
	_ = f.mem.Delete(keys...)
	return f.flush()
}

func (f *FileStore) flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.mem.mu.RLock()
	raw, err := json.MarshalIndent(f.mem.values, "", "  ")
	f.mem.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode token store: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token store dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write token store: %w", err)
	}
	return os.Rename(tmp, f.path)
}
