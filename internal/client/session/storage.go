package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/pkg/errs"
)

// State is what survives a restart.
type State struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	User         *apiclient.User `json:"user"`
}

func (s *State) valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Storage persists the session. Load returns nil, nil when nothing is stored.
type Storage interface {
	Load() (*State, error)
	Save(st *State) error
	Clear() error
}

// FileStorage keeps the session in a 0600 JSON file. It doubles as the API
// client's token source, so every request reads the persisted token.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Path() string { return f.path }

func (f *FileStorage) Load() (*State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrapf(err, "read session file %s", f.path)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errs.Wrapf(err, "decode session file %s", f.path)
	}
	return &st, nil
}

// Save writes through a temp file so a crash never leaves a torn session.
func (f *FileStorage) Save(st *State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(st)
	if err != nil {
		return errs.Wrap(err, "encode session")
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errs.Wrapf(err, "create session dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errs.Wrap(err, "create temp session file")
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "chmod session file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "write session file")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "close session file")
	}
	return errs.Wrap(os.Rename(tmp.Name(), f.path), "replace session file")
}

func (f *FileStorage) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errs.Wrapf(err, "remove session file %s", f.path)
	}
	return nil
}

// Token implements apiclient.TokenSource.
func (f *FileStorage) Token() string {
	st, err := f.Load()
	if err != nil || st == nil {
		return ""
	}
	return st.Token
}

// MemoryStorage is for tests and for processes that must not touch disk.
type MemoryStorage struct {
	mu sync.Mutex
	st *State
}

func (m *MemoryStorage) Load() (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.st == nil {
		return nil, nil
	}
	cp := *m.st
	return &cp, nil
}

func (m *MemoryStorage) Save(st *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	m.st = &cp
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = nil
	return nil
}

func (m *MemoryStorage) Token() string {
	st, _ := m.Load()
	if st == nil {
		return ""
	}
	return st.Token
}
