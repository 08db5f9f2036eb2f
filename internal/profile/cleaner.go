package profile

import (
	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
	"github.com/firefly-engineering/nix-install-pkgs/internal/state"
	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

// Cleaner removes the profile recorded by an earlier install.
type Cleaner struct {
	fs    system.FileSystem
	store state.Store
}

// NewCleaner creates a Cleaner.
func NewCleaner(fsys system.FileSystem, store state.Store) *Cleaner {
	return &Cleaner{fs: fsys, store: store}
}

// Run removes the recorded directory. It returns the removed path, or ""
// when there was nothing to do.
func (c *Cleaner) Run() (string, error) {
	dir := c.store.Get(state.ProfileDirKey)
	if dir == "" {
		logging.Debug("no profile recorded, nothing to clean up")
		return "", nil
	}

	if err := c.fs.RemoveAll(dir); err != nil {
		return "", errors.CleanupFailed(dir, err)
	}
	if err := c.store.Set(state.ProfileDirKey, ""); err != nil {
		return "", errors.StateClearFailed(dir, err)
	}

	logging.UserSuccess("Removed %s", dir)
	return dir, nil
}
