// Package nix wraps the nix command line for resolving package references.
//
// All calls go through a system.Runner so tests can substitute canned
// results. Probing calls are silent unless debug output is requested.
//
// # Reference Qualification
//
// MaybeQualify turns bare names into nixpkgs installables:
//
//	ref, err := client.MaybeQualify(ctx, "hello")       // "nixpkgs#hello"
//	ref, err := client.MaybeQualify(ctx, ".#default")   // unchanged, no probe
//
// The probe result is classified by ClassifyProbe into one of ProbeQualified,
// ProbeNeedsPrefix or ProbeInvalid.
//
// # Locked URLs
//
// LockedURL and FlakeLockedURL resolve a flake to a content-addressed URL of
// the form file:///nix/store/<hash>-source?narHash=sha256-... . LockedURL
// returns "" when the path is not a flake; FlakeLockedURL fails instead.
package nix
