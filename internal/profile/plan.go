package profile

import (
	"context"
	"path/filepath"

	"github.com/firefly-engineering/nix-install-pkgs/internal/config"
	"github.com/firefly-engineering/nix-install-pkgs/internal/generator"
)

// Plan is what Run would do, without doing it.
type Plan struct {
	ProfileDir  string       `yaml:"profileDir" json:"profileDir"`
	Reused      bool         `yaml:"reused" json:"reused"`
	InputsFrom  string       `yaml:"inputsFrom,omitempty" json:"inputsFrom,omitempty"`
	Invocations []Invocation `yaml:"invocations" json:"invocations"`
}

// Invocation is one nix command of a plan.
type Invocation struct {
	Step string   `yaml:"step" json:"step"`
	Argv []string `yaml:"argv" json:"argv"`
}

// Plan resolves inputs the same way Run does and returns the install
// invocations. Nothing is installed or persisted. Without a
// usable recorded profile the directory is shown with the temp-dir pattern.
func (i *Installer) Plan(ctx context.Context, inputs config.Inputs) (*Plan, error) {
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

	tmpDir := i.recordedTempDir()
	reused := tmpDir != ""
	if !reused {
		tmpDir = filepath.Join(i.fs.TempDir(), TempDirPattern)
	}
	profileDir, err := ProfilePath(tmpDir)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		ProfileDir:  profileDir,
		Reused:      reused,
		InputsFrom:  inputsFromURL,
		Invocations: []Invocation{},
	}

	if pkgs := inputs.PackageList(); len(pkgs) > 0 {
		installables, err := i.builder.PackageArgs(ctx, pkgs, inputsFromURL)
		if err != nil {
			return nil, err
		}
		plan.Invocations = append(plan.Invocations, Invocation{
			Step: "packages",
			Argv: i.argv(generator.InstallArgs(profileDir, extra, installables...)),
		})
	}

	if inputs.HasExpr() {
		expression, err := i.builder.Expression(ctx, inputs.Expr, inputsFromURL)
		if err != nil {
			return nil, err
		}
		plan.Invocations = append(plan.Invocations, Invocation{
			Step: "expression",
			Argv: i.argv(generator.ExprInstallArgs(profileDir, extra, expression)),
		})
	}

	return plan, nil
}

func (i *Installer) argv(args []string) []string {
	return append([]string{i.nix.Binary()}, args...)
}
