// Package actions adapts the CI platform's job-step interface: the command
// search path, step outputs and variables exported to later steps.
package actions

import (
	"io"
	"os"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// Platform is the job-step surface used by the installer and cleaner.
type Platform interface {
	// Getenv reads a variable from the step environment.
	Getenv(key string) string

	// AddPath prepends dir to the command search path of this and later steps.
	AddPath(dir string)

	// SetOutput sets a named step output.
	SetOutput(name, value string)

	// ExportVariable sets an environment variable for this and later steps.
	ExportVariable(name, value string)

	// IsDebug reports whether step debug logging is enabled.
	IsDebug() bool

	// Fail reports a failure annotation for the step.
	Fail(msg string)
}

// GitHub implements Platform on top of the GitHub Actions workflow commands.
type GitHub struct {
	action *githubactions.Action
	getenv func(string) string
	setenv func(string, string) error
}

// GitHubOption configures a GitHub platform.
type GitHubOption func(*GitHub)

// WithGetenv sets the environment lookup (useful for testing).
func WithGetenv(getenv func(string) string) GitHubOption {
	return func(g *GitHub) {
		g.getenv = getenv
	}
}

// WithSetenv sets how the current process environment is updated.
func WithSetenv(setenv func(string, string) error) GitHubOption {
	return func(g *GitHub) {
		g.setenv = setenv
	}
}

// NewGitHub creates a GitHub platform writing workflow commands to w.
// A nil w means stdout.
func NewGitHub(w io.Writer, opts ...GitHubOption) *GitHub {
	g := &GitHub{
		getenv: os.Getenv,
		setenv: os.Setenv,
	}
	for _, opt := range opts {
		opt(g)
	}
	if w == nil {
		w = os.Stdout
	}
	g.action = githubactions.New(
		githubactions.WithWriter(w),
		githubactions.WithGetenv(g.getenv),
	)
	return g
}

func (g *GitHub) Getenv(key string) string {
	return g.getenv(key)
}

// AddPath also updates PATH of the running process so later commands in
// this step see the directory.
func (g *GitHub) AddPath(dir string) {
	g.action.AddPath(dir)

	path := g.getenv("PATH")
	if path == "" {
		_ = g.setenv("PATH", dir)
		return
	}
	_ = g.setenv("PATH", dir+string(os.PathListSeparator)+path)
}

func (g *GitHub) SetOutput(name, value string) {
	g.action.SetOutput(name, value)
}

// ExportVariable also sets the variable in the running process.
func (g *GitHub) ExportVariable(name, value string) {
	g.action.SetEnv(name, value)
	_ = g.setenv(name, value)
}

func (g *GitHub) IsDebug() bool {
	return g.getenv("RUNNER_DEBUG") == "1"
}

func (g *GitHub) Fail(msg string) {
	g.action.Errorf("%s", strings.TrimSpace(msg))
}

// InGitHubActions reports whether the process runs as a GitHub Actions step.
func InGitHubActions(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") == "true"
}
