package health

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
)

// Store persists State across restarts.
type Store interface {
	Load() (State, error)
	Save(State) error
}

var _ Store = &FileStore{}

// FileStore keeps the state as indented JSON in a single file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns the zero State when the file does not exist or is empty.
func (f *FileStore) Load() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, pkgerrors.Wrapf(err, "failed to read health state from %s", f.path)
	}

	if strings.TrimSpace(string(b)) == "" {
		return State{}, nil
	}

	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, pkgerrors.Wrapf(err, "failed to unmarshal health state from %s", f.path)
	}
	if st.ChargeCycles < 0 {
		st.ChargeCycles = 0
	}

	return st, nil
}

// Save writes to a temporary file first and renames it into place.
func (f *FileStore) Save(st State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to marshal health state")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create directory for %s", f.path)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write %s", tmp)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return pkgerrors.Wrapf(err, "failed to move %s to %s", tmp, f.path)
	}

	return nil
}

var _ Store = &MemoryStore{}

// MemoryStore keeps the state in memory. Saves counts successful Save calls.
type MemoryStore struct {
	mu    sync.Mutex
	state State
	Saves int
}

func (m *MemoryStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStore) Save(st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
	m.Saves++
	return nil
}
