// Package profile installs packages into an ephemeral nix profile and
// removes it again.
//
// # Install
//
// Installer.Run walks a job step through:
//
//	inputs read -> profile directory ready -> packages installed
//	  -> expression installed -> bin published and directory persisted
//
// The profile lives at <tmpdir>/.nix-profile. The tmpdir is created once per
// job and recorded under state.ProfileDirKey, so later install steps in the
// same job add to the same profile.
//
// # Cleanup
//
// Cleaner.Run removes the recorded tmpdir and clears the state. It does
// nothing when no directory was recorded.
package profile
