package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
)

// isolate points the default config file at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := &Config{Settings: Settings{NixBinary: DefaultNixBinary}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_StepInputs(t *testing.T) {
	isolate(t)
	t.Setenv("INPUT_PACKAGES", "hello, jq")
	t.Setenv("INPUT_INPUTS-FROM", "github:NixOS/nixpkgs")
	t.Setenv("INPUT_NIX-ARGS", "--impure")
	t.Setenv("NIX_INSTALL_PKGS_NIX_BINARY", "/opt/nix/bin/nix")

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Inputs{
		Packages:   "hello, jq",
		InputsFrom: "github:NixOS/nixpkgs",
		NixArgs:    "--impure",
	}
	if diff := cmp.Diff(want, cfg.Inputs); diff != "" {
		t.Errorf("Inputs mismatch (-want +got):\n%s", diff)
	}
	if cfg.Settings.NixBinary != "/opt/nix/bin/nix" {
		t.Errorf("NixBinary = %q, want %q", cfg.Settings.NixBinary, "/opt/nix/bin/nix")
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, AppName, DefaultConfigFileName), `
[inputs]
packages = "from-file"
expr = "pkgs.hello"

[settings]
run-id = "file-run"
`)
	t.Setenv("INPUT_PACKAGES", "from-env")

	cfg, err := Load(LoadOptions{
		Flags: map[string]string{"inputs.expr": "pkgs.jq"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Inputs.Packages != "from-env" {
		t.Errorf("Packages = %q, env should override file", cfg.Inputs.Packages)
	}
	if cfg.Inputs.Expr != "pkgs.jq" {
		t.Errorf("Expr = %q, flag should override file", cfg.Inputs.Expr)
	}
	if cfg.Settings.RunID != "file-run" {
		t.Errorf("RunID = %q, want %q", cfg.Settings.RunID, "file-run")
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[inputs]\nexpr = \"[ pkgs.hello ]\"\n")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Inputs.Expr != "[ pkgs.hello ]" {
		t.Errorf("Expr = %q, want %q", cfg.Inputs.Expr, "[ pkgs.hello ]")
	}
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
		if !errors.HasCode(err, errors.ExitConfigError) {
			t.Errorf("Load() error = %v, want config error", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		writeFile(t, path, "[inputs\npackages = ")
		_, err := Load(LoadOptions{ConfigFile: path})
		if !errors.HasCode(err, errors.ExitConfigError) {
			t.Errorf("Load() error = %v, want config error", err)
		}
	})
}

func TestInputs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		inputs  Inputs
		wantErr bool
	}{
		{"packages only", Inputs{Packages: "hello"}, false},
		{"expr only", Inputs{Expr: "pkgs.hello"}, false},
		{"both", Inputs{Packages: "hello", Expr: "pkgs.jq"}, false},
		{"neither", Inputs{}, true},
		{"blank", Inputs{Packages: "  ", Expr: "\n"}, true},
		{"separators only", Inputs{Packages: " , ,"}, true},
		{"separators with expr", Inputs{Packages: " , ", Expr: "pkgs.hello"}, false},
		{"inputs-from alone", Inputs{InputsFrom: "github:NixOS/nixpkgs"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inputs.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.HasCode(err, errors.ExitConfigError) {
					t.Errorf("Validate() error code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
				}
				if err.Error() != "Neither the packages nor the expr input is given" {
					t.Errorf("Validate() message = %q", err.Error())
				}
			}
		})
	}
}

func TestInputs_PackageList(t *testing.T) {
	tests := []struct {
		packages string
		want     []string
	}{
		{"", nil},
		{"hello", []string{"hello"}},
		{"pkg1,nixpkgs#pkg2", []string{"pkg1", "nixpkgs#pkg2"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
		{",", nil},
	}

	for _, tt := range tests {
		t.Run(tt.packages, func(t *testing.T) {
			in := Inputs{Packages: tt.packages}
			if diff := cmp.Diff(tt.want, in.PackageList()); diff != "" {
				t.Errorf("PackageList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInputs_ExtraArgs(t *testing.T) {
	tests := []struct {
		nixArgs string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"--impure", []string{"--impure"}, false},
		{`--option substituters 'https://a https://b'`, []string{"--option", "substituters", "https://a https://b"}, false},
		{`--option "unterminated`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.nixArgs, func(t *testing.T) {
			in := Inputs{NixArgs: tt.nixArgs}
			got, err := in.ExtraArgs()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtraArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtraArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInputKey(t *testing.T) {
	tests := map[string]string{
		"INPUT_PACKAGES":    "inputs.packages",
		"INPUT_INPUTS-FROM": "inputs.inputs-from",
		"INPUT_NIX_ARGS":    "inputs.nix-args",
		"INPUT_":            "",
	}
	for in, want := range tests {
		if got := inputKey(in); got != want {
			t.Errorf("inputKey(%q) = %q, want %q", in, got, want)
		}
	}
}
