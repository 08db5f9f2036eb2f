package generator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
)

// DefaultRepoPath is the flake whose locked URL is bound as repoFlake.
const DefaultRepoPath = "."

// Resolver is the part of the nix client the builder needs.
type Resolver interface {
	DeterminePlatform(ctx context.Context) (string, error)
	MaybeQualify(ctx context.Context, ref string) (string, error)
	LockedURL(ctx context.Context, path string) string
	NixpkgsExpr(ctx context.Context, inputsFromLockedURL string) (string, error)
}

// Builder assembles install arguments from inputs.
type Builder struct {
	resolver Resolver
	repoPath string
}

// NewBuilder creates a Builder that resolves references through r.
// An empty repoPath means the working directory.
func NewBuilder(r Resolver, repoPath string) *Builder {
	if repoPath == "" {
		repoPath = DefaultRepoPath
	}
	return &Builder{resolver: r, repoPath: repoPath}
}

// PackageArgs qualifies each package and returns the installables, preceded
// by --inputs-from when an inputs-from locked URL is given. Order is kept.
func (b *Builder) PackageArgs(ctx context.Context, packages []string, inputsFromLockedURL string) ([]string, error) {
	var args []string
	if inputsFromLockedURL != "" {
		args = append(args, "--inputs-from", inputsFromLockedURL)
	}

	for _, pkg := range packages {
		ref, err := b.resolver.MaybeQualify(ctx, pkg)
		if err != nil {
			return nil, err
		}
		args = append(args, ref)
	}

	return args, nil
}

// Expression resolves the bindings and renders the install expression for expr.
func (b *Builder) Expression(ctx context.Context, expr, inputsFromLockedURL string) (string, error) {
	repoURL := b.resolver.LockedURL(ctx, b.repoPath)
	if repoURL == "" {
		logging.UserWarning("No flake found at %s, repoFlake is an empty set", b.repoPath)
	}

	nixpkgs, err := b.resolver.NixpkgsExpr(ctx, inputsFromLockedURL)
	if err != nil {
		return "", err
	}

	platform, err := b.resolver.DeterminePlatform(ctx)
	if err != nil {
		return "", err
	}

	return RenderExpression(&ExprData{
		RepoLockedURL:       repoURL,
		InputsFromLockedURL: inputsFromLockedURL,
		Nixpkgs:             nixpkgs,
		Platform:            platform,
		Expr:                expr,
	})
}

// RenderExpression renders the install expression template.
func RenderExpression(data *ExprData) (string, error) {
	if data.Nixpkgs == "" {
		return "", fmt.Errorf("nixpkgs expression is required")
	}
	if data.Platform == "" {
		return "", fmt.Errorf("platform is required")
	}

	var buf bytes.Buffer
	if err := exprTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute expression template: %w", err)
	}
	return buf.String(), nil
}

// InstallArgs returns the full argument list for `nix profile install`.
// extra nix arguments come right after the profile so installables stay last.
func InstallArgs(profileDir string, extra []string, installables ...string) []string {
	args := []string{"profile", "install", "--profile", profileDir}
	args = append(args, extra...)
	return append(args, installables...)
}

// ExprInstallArgs returns the argument list installing the result of expression.
func ExprInstallArgs(profileDir string, extra []string, expression string) []string {
	return InstallArgs(profileDir, extra, "--expr", expression)
}
