// Package app provides the application context for nix-install-pkgs.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Runner   system.Runner     // Runs nix
//	    FS       system.FileSystem // Profile directory and state file
//	    Platform actions.Platform  // CI job-step adapter
//	    Store    state.Store       // Install/cleanup hand-off
//	    Debug    bool              // Echo resolution calls
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithRunner(mockRunner),
//	    app.WithFS(mockFS),
//	    app.WithPlatform(actions.NewMockPlatform()),
//	    app.WithStore(state.NewMemoryStore("job-1")),
//	)
//
// # Choosing a state store
//
// Without WithStore, StateStore picks EnvStore inside a GitHub Actions job
// and a FileStore under $XDG_STATE_HOME/nix-install-pkgs otherwise.
package app
