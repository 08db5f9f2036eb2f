package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/firefly-engineering/nix-install-pkgs/internal/actions"
)

// ProfileDirKey names the temporary directory holding the ephemeral profile.
const ProfileDirKey = "STATE_NIX_PROFILE_TMPDIR"

// Store reads and writes persisted job state.
type Store interface {
	// Get returns the value for key, or "" when unset.
	Get(key string) string

	// Set stores value for key. Setting "" clears it.
	Set(key, value string) error
}

// MemoryStore is an in-memory Store scoped to one job run. Stores derived
// with ForRun share the same backing map.
type MemoryStore struct {
	mu    *sync.Mutex
	runs  map[string]map[string]string
	runID string
}

// NewMemoryStore creates a MemoryStore for runID. An empty runID gets a
// fresh random one.
func NewMemoryStore(runID string) *MemoryStore {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &MemoryStore{
		mu:    &sync.Mutex{},
		runs:  make(map[string]map[string]string),
		runID: runID,
	}
}

// RunID returns the job run this store is scoped to.
func (m *MemoryStore) RunID() string {
	return m.runID
}

// ForRun returns a view of the same memory scoped to another job run.
func (m *MemoryStore) ForRun(runID string) *MemoryStore {
	return &MemoryStore{mu: m.mu, runs: m.runs, runID: runID}
}

func (m *MemoryStore) Get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[m.runID][key]
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[m.runID]
	if !ok {
		run = make(map[string]string)
		m.runs[m.runID] = run
	}
	if value == "" {
		delete(run, key)
		return nil
	}
	run[key] = value
	return nil
}

// EnvStore persists state as environment variables exported to later steps.
type EnvStore struct {
	platform actions.Platform
}

// NewEnvStore creates an EnvStore on top of platform.
func NewEnvStore(platform actions.Platform) *EnvStore {
	return &EnvStore{platform: platform}
}

func (e *EnvStore) Get(key string) string {
	return e.platform.Getenv(key)
}

func (e *EnvStore) Set(key, value string) error {
	e.platform.ExportVariable(key, value)
	return nil
}

// Ensure the stores implement Store.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*EnvStore)(nil)
	_ Store = (*FileStore)(nil)
)
