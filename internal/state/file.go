package state

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

const (
	// AppName names the per-user state and config directories.
	AppName = "nix-install-pkgs"

	// DefaultStateFileName is the state file inside the state directory.
	DefaultStateFileName = "state.toml"

	// LocalRunID scopes state when no CI run id is available.
	LocalRunID = "local"
)

// fileState is the on-disk layout:
//
//	[runs.<run id>]
//	STATE_NIX_PROFILE_TMPDIR = "/tmp/nix-profile-123"
type fileState struct {
	Runs map[string]map[string]string `toml:"runs"`
}

// FileStore persists state in a TOML file, scoped by run id.
type FileStore struct {
	mu    sync.Mutex
	fs    system.FileSystem
	path  string
	runID string
}

// DefaultStateFile returns the state file under the XDG state directory.
func DefaultStateFile() (string, error) {
	return StateFileIn(filepath.Join(xdg.StateHome, AppName), DefaultStateFileName)
}

// StateFileIn joins name under dir without letting name escape dir.
func StateFileIn(dir, name string) (string, error) {
	path, err := securejoin.SecureJoin(dir, name)
	if err != nil {
		return "", fmt.Errorf("invalid state file %q: %w", name, err)
	}
	return path, nil
}

// NewFileStore creates a FileStore at path for runID.
// An empty runID means LocalRunID.
func NewFileStore(fsys system.FileSystem, path, runID string) *FileStore {
	if runID == "" {
		runID = LocalRunID
	}
	return &FileStore{fs: fsys, path: path, runID: runID}
}

// Path returns the state file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		logging.Warn("failed to read state file", "path", f.path, "error", err)
		return ""
	}
	return st.Runs[f.runID][key]
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return err
	}

	run := st.Runs[f.runID]
	if run == nil {
		run = make(map[string]string)
	}
	if value == "" {
		delete(run, key)
	} else {
		run[key] = value
	}
	if len(run) == 0 {
		delete(st.Runs, f.runID)
	} else {
		st.Runs[f.runID] = run
	}

	return f.save(st)
}

func (f *FileStore) load() (*fileState, error) {
	st := &fileState{Runs: make(map[string]map[string]string)}

	data, err := f.fs.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if _, err := toml.Decode(string(data), st); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	if st.Runs == nil {
		st.Runs = make(map[string]map[string]string)
	}
	return st, nil
}

func (f *FileStore) save(st *fileState) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := f.fs.WriteFile(f.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// RunID returns the run this store is scoped to.
func (f *FileStore) RunID() string {
	return f.runID
}
