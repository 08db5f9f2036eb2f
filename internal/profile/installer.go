package profile

import (
	"context"
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/nix-install-pkgs/internal/actions"
	"github.com/firefly-engineering/nix-install-pkgs/internal/config"
	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
	"github.com/firefly-engineering/nix-install-pkgs/internal/generator"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
	"github.com/firefly-engineering/nix-install-pkgs/internal/state"
	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

const (
	// ProfileDirName is the profile inside the temporary directory.
	ProfileDirName = ".nix-profile"

	// TempDirPattern names the temporary directory.
	TempDirPattern = "nix-profile-*"

	// OutputProfilePath is the step output carrying the profile directory.
	OutputProfilePath = "nix_profile_path"
)

// Nix is what the installer needs from the nix client.
type Nix interface {
	generator.Resolver
	Binary() string
	FlakeLockedURL(ctx context.Context, ref string) (string, error)
	Run(ctx context.Context, args []string, opts system.ExecOptions) (*system.ExecResult, error)
}

// Installer installs the requested packages and expression into the job's
// profile.
type Installer struct {
	nix      Nix
	builder  *generator.Builder
	fs       system.FileSystem
	platform actions.Platform
	store    state.Store
}

// NewInstaller creates an Installer.
func NewInstaller(nix Nix, fsys system.FileSystem, platform actions.Platform, store state.Store) *Installer {
	return &Installer{
		nix:      nix,
		builder:  generator.NewBuilder(nix, generator.DefaultRepoPath),
		fs:       fsys,
		platform: platform,
		store:    store,
	}
}

// Result describes a completed install.
type Result struct {
	TempDir    string
	ProfileDir string
	BinDir     string
	Reused     bool
}

// Run performs the install for inputs.
func (i *Installer) Run(ctx context.Context, inputs config.Inputs) (*Result, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}
	extra, err := inputs.ExtraArgs()
	if err != nil {
		return nil, err
	}

	inputsFromURL, err := i.resolveInputsFrom(ctx, inputs.InputsFrom)
	if err != nil {
		return nil, err
	}

	tmpDir, reused, err := i.profileTempDir()
	if err != nil {
		return nil, err
	}
	profileDir, err := ProfilePath(tmpDir)
	if err != nil {
		return nil, err
	}
	log := logging.With("profile", profileDir)
	log.Debug("using profile", "reused", reused)

	if pkgs := inputs.PackageList(); len(pkgs) > 0 {
		installables, err := i.builder.PackageArgs(ctx, pkgs, inputsFromURL)
		if err != nil {
			return nil, err
		}
		if err := i.install(ctx, "packages", generator.InstallArgs(profileDir, extra, installables...)); err != nil {
			return nil, err
		}
	}

	if inputs.HasExpr() {
		expression, err := i.builder.Expression(ctx, inputs.Expr, inputsFromURL)
		if err != nil {
			return nil, err
		}
		if err := i.install(ctx, "expression", generator.ExprInstallArgs(profileDir, extra, expression)); err != nil {
			return nil, err
		}
	}

	binDir := filepath.Join(profileDir, "bin")
	i.platform.AddPath(binDir)
	i.platform.SetOutput(OutputProfilePath, profileDir)
	if err := i.store.Set(state.ProfileDirKey, tmpDir); err != nil {
		return nil, fmt.Errorf("failed to persist profile location: %w", err)
	}
	log.Debug("published profile", "bin", binDir)

	logging.UserSuccess("Installed into %s", profileDir)
	return &Result{TempDir: tmpDir, ProfileDir: profileDir, BinDir: binDir, Reused: reused}, nil
}

func (i *Installer) resolveInputsFrom(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	return i.nix.FlakeLockedURL(ctx, ref)
}

// recordedTempDir returns the recorded directory when it still exists.
func (i *Installer) recordedTempDir() string {
	dir := i.store.Get(state.ProfileDirKey)
	if dir == "" {
		return ""
	}
	if !i.fs.IsDir(dir) {
		logging.Debug("recorded profile directory is gone, creating a new one", "path", dir)
		return ""
	}
	return dir
}

// profileTempDir returns the recorded directory or creates a new one.
func (i *Installer) profileTempDir() (string, bool, error) {
	if dir := i.recordedTempDir(); dir != "" {
		return dir, true, nil
	}

	dir, err := i.fs.MkdirTemp("", TempDirPattern)
	if err != nil {
		return "", false, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return dir, false, nil
}

func (i *Installer) install(ctx context.Context, what string, args []string) error {
	if _, err := i.nix.Run(ctx, args, system.ExecOptions{}); err != nil {
		return errors.InstallFailed(what, err)
	}
	return nil
}

// ProfilePath returns the profile directory inside tmpDir.
func ProfilePath(tmpDir string) (string, error) {
	path, err := securejoin.SecureJoin(tmpDir, ProfileDirName)
	if err != nil {
		return "", fmt.Errorf("invalid profile directory under %s: %w", tmpDir, err)
	}
	return path, nil
}
