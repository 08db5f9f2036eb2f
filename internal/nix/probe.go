package nix

import (
	"strings"

	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

// ProbeOutcome classifies a `nix flake metadata <ref>` probe.
type ProbeOutcome int

const (
	// ProbeQualified means the reference is usable as given.
	ProbeQualified ProbeOutcome = iota
	// ProbeNeedsPrefix means nix could not find a flake of that name;
	// the name is assumed to be a nixpkgs attribute.
	ProbeNeedsPrefix
	// ProbeInvalid means the reference is malformed.
	ProbeInvalid
)

// cannotFindMarker is what nix prints when a bare name is not a known flake.
const cannotFindMarker = "cannot find"

func (o ProbeOutcome) String() string {
	switch o {
	case ProbeQualified:
		return "qualified"
	case ProbeNeedsPrefix:
		return "needs-prefix"
	case ProbeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ClassifyProbe maps a probe result to its outcome.
func ClassifyProbe(res *system.ExecResult) ProbeOutcome {
	switch {
	case res.ExitCode == 0:
		return ProbeQualified
	case strings.Contains(res.Stderr, cannotFindMarker):
		return ProbeNeedsPrefix
	default:
		return ProbeInvalid
	}
}
