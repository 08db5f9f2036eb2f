package nix

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
)

const (
	// DefaultBinary is the nix executable looked up on PATH.
	DefaultBinary = "nix"

	// DefaultCollection is the flake bare names are qualified with.
	DefaultCollection = "nixpkgs"
)

// Client runs nix subcommands through a Runner.
type Client struct {
	runner system.Runner
	binary string
	debug  bool
}

// Option configures a Client.
type Option func(*Client)

// WithBinary sets the nix executable.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithDebug makes probing calls echo their output.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a Client using runner.
func NewClient(runner system.Runner, opts ...Option) *Client {
	c := &Client{
		runner: runner,
		binary: DefaultBinary,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the nix executable name.
func (c *Client) Binary() string {
	return c.binary
}

// Run invokes nix with args. Options are passed through unchanged.
func (c *Client) Run(ctx context.Context, args []string, opts system.ExecOptions) (*system.ExecResult, error) {
	return c.runner.Run(ctx, c.binary, args, opts)
}

// probe runs a resolution call whose exit code the caller inspects.
func (c *Client) probe(ctx context.Context, args ...string) (*system.ExecResult, error) {
	return c.Run(ctx, args, system.ExecOptions{
		Silent:           !c.debug,
		IgnoreReturnCode: true,
	})
}

// DeterminePlatform returns the system double of the host, e.g. "x86_64-linux".
func (c *Client) DeterminePlatform(ctx context.Context) (string, error) {
	const expr = "builtins.currentSystem"

	res, err := c.probe(ctx, "eval", "--impure", "--json", "--expr", expr)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", errors.EvaluationFailed(expr, fmt.Errorf("exit code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr)))
	}

	var platform string
	if err := json.Unmarshal([]byte(res.Stdout), &platform); err != nil {
		return "", errors.EvaluationFailed(expr, fmt.Errorf("unexpected output %q: %w", res.Stdout, err))
	}

	logging.Debug("determined platform", "system", platform)
	return platform, nil
}

// MaybeQualify returns ref unchanged when it is usable as an installable and
// prefixes it with "nixpkgs#" when nix cannot find a flake of that name.
func (c *Client) MaybeQualify(ctx context.Context, ref string) (string, error) {
	if strings.Contains(ref, "#") {
		return ref, nil
	}

	res, err := c.probe(ctx, "flake", "metadata", ref)
	if err != nil {
		return "", err
	}

	switch ClassifyProbe(res) {
	case ProbeQualified:
		return ref, nil
	case ProbeNeedsPrefix:
		logging.UserInfo("Prefixing %q with %q", ref, DefaultCollection+"#")
		return DefaultCollection + "#" + ref, nil
	default:
		return "", errors.InvalidReference(ref, res.Stderr)
	}
}

// LockedURL resolves the locked URL of the flake at path. It returns "" when
// path is not a flake or its metadata is unusable.
func (c *Client) LockedURL(ctx context.Context, path string) string {
	res, err := c.probe(ctx, "flake", "metadata", "--json", path)
	if err != nil {
		logging.Debug("flake metadata could not run", "path", path, "error", err)
		return ""
	}
	if res.ExitCode != 0 {
		logging.Debug("no flake found", "path", path, "exitCode", res.ExitCode)
		return ""
	}

	lockedURL, err := lockedURLFromOutput(res.Stdout)
	if err != nil {
		logging.Debug("unusable flake metadata", "path", path, "error", err)
		return ""
	}
	return lockedURL
}

// FlakeLockedURL resolves the locked URL of ref and fails when that is not
// possible.
func (c *Client) FlakeLockedURL(ctx context.Context, ref string) (string, error) {
	res, err := c.Run(ctx, []string{"flake", "metadata", "--json", ref}, system.ExecOptions{
		Silent: !c.debug,
	})
	if err != nil {
		return "", errors.ResolutionFailed(ref, err)
	}

	lockedURL, err := lockedURLFromOutput(res.Stdout)
	if err != nil {
		return "", errors.ResolutionFailed(ref, err)
	}

	logging.Debug("resolved locked URL", "ref", ref, "url", lockedURL)
	return lockedURL, nil
}

// NixpkgsExpr returns a Nix expression evaluating to a nixpkgs source tree.
// With an inputs-from locked URL it selects that flake's nixpkgs input;
// otherwise it pins the nixpkgs flake from the registry.
func (c *Client) NixpkgsExpr(ctx context.Context, inputsFromLockedURL string) (string, error) {
	if inputsFromLockedURL != "" {
		return fmt.Sprintf(`(builtins.getFlake("%s")).inputs.%s`, Escape(inputsFromLockedURL), DefaultCollection), nil
	}

	nixpkgsURL, err := c.FlakeLockedURL(ctx, DefaultCollection)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`builtins.getFlake("%s")`, Escape(nixpkgsURL)), nil
}

func lockedURLFromOutput(stdout string) (string, error) {
	meta, err := ParseFlakeMetadata([]byte(stdout))
	if err != nil {
		return "", err
	}
	return meta.LockedURL()
}

// Escape escapes s for use inside a Nix "..." string literal.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}
