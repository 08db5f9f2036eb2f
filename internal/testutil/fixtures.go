package testutil

import (
	"embed"
	"fmt"
	"testing"

	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// Locked URLs matching the embedded fixtures.
const (
	RepoLockedURL       = "file:///nix/store/0c1k2sxz8vn7s9kqx0rj4v2q1v9m3hfa-source?narHash=sha256-Q2XnT1cM6Nq0o8y7gY3bb0fH3TmRaS1tYc5o0qNf2cE%3D"
	NixpkgsLockedURL    = "file:///nix/store/2b7h1jm0c2j5gq8k1h0d3x9v6r4l7sy1-source?narHash=sha256-vq0mWfJ1xI1XoS5D7xK8s1q3hG9tY2mLrG6cE0pQwZ4%3D"
	InputsFromLockedURL = "file:///nix/store/9x4v2kq7m1p3s8d0f6h5j2l1z7c3b9n4-source?narHash=sha256-7yF3Hc0n1mXk2qTz9V4sLr8pJb6dW5eA0uGi1oKhNcM%3D"

	// Platform is the system double the canned runner reports.
	Platform = "x86_64-linux"
)

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustLoadFixture loads a fixture or fails the test.
func MustLoadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return string(data)
}

// StderrCannotFind is what nix prints for a bare name that is not a flake.
func StderrCannotFind(name string) string {
	return fmt.Sprintf("error: cannot find flake 'flake:%s' in the flake registries\n", name)
}

// StderrUnsupported is what nix prints for a malformed flake reference.
func StderrUnsupported(ref string) string {
	return fmt.Sprintf("error: input '%s' is unsupported\n", ref)
}

// NewNixRunner returns a MockRunner answering platform, repository, nixpkgs
// and inputs-from resolution. Installs succeed with empty output.
func NewNixRunner(t *testing.T) *system.MockRunner {
	t.Helper()

	runner := system.NewMockRunner()
	runner.AddResponse("nix eval --impure --json --expr builtins.currentSystem", system.ExecResult{
		Stdout: fmt.Sprintf("%q\n", Platform),
	})
	runner.AddResponse("nix flake metadata --json .", system.ExecResult{
		Stdout: MustLoadFixture(t, "repo_flake_metadata.json"),
	})
	runner.AddResponse("nix flake metadata --json nixpkgs", system.ExecResult{
		Stdout: MustLoadFixture(t, "nixpkgs_flake_metadata.json"),
	})
	runner.AddResponse("nix flake metadata --json github:yaxitech/ragenix", system.ExecResult{
		Stdout: MustLoadFixture(t, "inputs_from_flake_metadata.json"),
	})
	runner.AddResponse("nix profile install", system.ExecResult{})
	return runner
}
