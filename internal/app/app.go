// Package app provides the application context for nix-install-pkgs.
// It allows dependency injection for testing.
package app

import (
	"os"

	"github.com/firefly-engineering/nix-install-pkgs/internal/actions"
	"github.com/firefly-engineering/nix-install-pkgs/internal/config"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
	"github.com/firefly-engineering/nix-install-pkgs/internal/nix"
	"github.com/firefly-engineering/nix-install-pkgs/internal/profile"
	"github.com/firefly-engineering/nix-install-pkgs/internal/state"
	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

// App holds the application dependencies
type App struct {
	// Runner executes external commands
	Runner system.Runner

	// FS is the filesystem used for the profile and the state file
	FS system.FileSystem

	// Platform is the CI job-step adapter
	Platform actions.Platform

	// Store persists state between install and cleanup. When nil it is
	// chosen from the environment.
	Store state.Store

	// Debug makes resolution calls echo their output
	Debug bool
}

// Option is a function that configures the App
type Option func(*App)

// WithRunner sets a custom command runner
func WithRunner(r system.Runner) Option {
	return func(a *App) {
		a.Runner = r
	}
}

// WithFS sets a custom filesystem
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithPlatform sets a custom CI platform
func WithPlatform(p actions.Platform) Option {
	return func(a *App) {
		a.Platform = p
	}
}

// WithStore sets a custom state store
func WithStore(s state.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithDebug enables echoing of resolution calls
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.Debug = debug
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		Runner:   system.DefaultRunner(),
		FS:       system.DefaultFS(),
		Platform: actions.NewGitHub(os.Stdout),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Nix returns a nix client honoring the configured binary and debug mode.
func (a *App) Nix(settings config.Settings) *nix.Client {
	return nix.NewClient(a.Runner,
		nix.WithBinary(settings.NixBinary),
		nix.WithDebug(a.Debug || a.Platform.IsDebug()),
	)
}

// StateStore returns the configured store, or picks one: exported step
// variables inside GitHub Actions, a state file otherwise.
func (a *App) StateStore(settings config.Settings) (state.Store, error) {
	if a.Store != nil {
		return a.Store, nil
	}

	if actions.InGitHubActions(a.Platform.Getenv) && a.Platform.Getenv("GITHUB_ENV") != "" {
		logging.Debug("persisting state in step environment")
		return state.NewEnvStore(a.Platform), nil
	}

	path := settings.StateFile
	if path == "" {
		var err error
		if path, err = state.DefaultStateFile(); err != nil {
			return nil, err
		}
	}
	runID := settings.RunID
	if runID == "" {
		runID = a.ciRunID()
	}
	logging.Debug("persisting state in file", "path", path, "run", runID)
	return state.NewFileStore(a.FS, path, runID), nil
}

// ciRunID identifies the job from CI variables, or "" outside CI.
func (a *App) ciRunID() string {
	run := a.Platform.Getenv("GITHUB_RUN_ID")
	if run == "" {
		return ""
	}
	if job := a.Platform.Getenv("GITHUB_JOB"); job != "" {
		return run + "-" + job
	}
	return run
}

// Installer builds the profile installer.
func (a *App) Installer(settings config.Settings) (*profile.Installer, error) {
	store, err := a.StateStore(settings)
	if err != nil {
		return nil, err
	}
	return profile.NewInstaller(a.Nix(settings), a.FS, a.Platform, store), nil
}

// Cleaner builds the profile cleaner.
func (a *App) Cleaner(settings config.Settings) (*profile.Cleaner, error) {
	store, err := a.StateStore(settings)
	if err != nil {
		return nil, err
	}
	return profile.NewCleaner(a.FS, store), nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
