package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/nix-install-pkgs/internal/actions"
	"github.com/firefly-engineering/nix-install-pkgs/internal/app"
	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
	"github.com/firefly-engineering/nix-install-pkgs/internal/profile"
	"github.com/firefly-engineering/nix-install-pkgs/internal/state"
	"github.com/firefly-engineering/nix-install-pkgs/internal/system"
	"github.com/firefly-engineering/nix-install-pkgs/internal/testutil"
)

// testEnv holds test environment state
type testEnv struct {
	runner   *system.MockRunner
	fs       *system.MockFS
	platform *actions.MockPlatform
	store    *state.MemoryStore
	userOut  bytes.Buffer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	for _, name := range []string{"INPUT_PACKAGES", "INPUT_EXPR", "INPUT_INPUTS-FROM", "INPUT_NIX-ARGS"} {
		t.Setenv(name, "")
	}

	env := &testEnv{
		runner:   testutil.NewNixRunner(t),
		fs:       system.NewMockFS(),
		platform: actions.NewMockPlatform(),
		store:    state.NewMemoryStore("job-1"),
	}

	app.SetDefault(app.New(
		app.WithRunner(env.runner),
		app.WithFS(env.fs),
		app.WithPlatform(env.platform),
		app.WithStore(env.store),
	))
	t.Cleanup(app.ResetDefault)

	logging.SetUserOutput(&env.userOut, &env.userOut)
	t.Cleanup(logging.ResetUserOutput)

	return env
}

func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each test
	verbose = false
	jsonOutput = false
	configFile = ""
	planFormat = "yaml"
	resetFlags(rootCmd, installCmd, cleanupCmd, planCmd)

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "nix-install-pkgs") {
		t.Error("Help output should contain 'nix-install-pkgs'")
	}

	for _, sub := range []string{"install", "cleanup", "plan"} {
		if !strings.Contains(stdout, sub) {
			t.Errorf("Help output should list %q", sub)
		}
	}
}

func TestInstallCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("install", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, flag := range []string{"--packages", "--expr", "--inputs-from", "--nix-args"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Install help should mention %s", flag)
		}
	}
}

func TestInstallCommand_Packages(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := executeCommand("install", "--packages", "nixpkgs#hello, nixpkgs#jq")
	if err != nil {
		t.Fatalf("install failed: %v", err)
	}

	installs := env.runner.CommandsWithPrefix("nix profile install")
	if len(installs) != 1 {
		t.Fatalf("expected 1 install, got %d", len(installs))
	}
	want := []string{"profile", "install", "--profile", "/tmp/nix-profile-1/.nix-profile", "nixpkgs#hello", "nixpkgs#jq"}
	if diff := cmp.Diff(want, installs[0].Args); diff != "" {
		t.Errorf("install args mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"/tmp/nix-profile-1/.nix-profile/bin"}, env.platform.Paths); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
	if got := env.store.Get(state.ProfileDirKey); got != "/tmp/nix-profile-1" {
		t.Errorf("state = %q", got)
	}
	if !strings.Contains(env.userOut.String(), "/tmp/nix-profile-1/.nix-profile/bin") {
		t.Errorf("user output should mention the bin directory, got:\n%s", env.userOut.String())
	}
}

func TestInstallCommand_StepInputs(t *testing.T) {
	env := setupTestEnv(t)
	t.Setenv("INPUT_EXPR", "pkgs.hello")

	if _, _, err := executeCommand("install"); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	installs := env.runner.CommandsWithPrefix("nix profile install")
	if len(installs) != 1 {
		t.Fatalf("expected 1 install, got %d", len(installs))
	}
	args := installs[0].Args
	if args[4] != "--expr" || !strings.HasSuffix(args[5], "in pkgs.hello") {
		t.Errorf("unexpected expression install: %v", args)
	}
}

func TestInstallCommand_NoInputs(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := executeCommand("install")
	if err == nil {
		t.Fatal("install should fail without inputs")
	}
	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
	}

	want := []string{"Workflow run failed: Neither the packages nor the expr input is given"}
	if diff := cmp.Diff(want, env.platform.Failures); diff != "" {
		t.Errorf("Failures mismatch (-want +got):\n%s", diff)
	}
	if len(env.runner.Commands) != 0 {
		t.Errorf("no command should run, got %d", len(env.runner.Commands))
	}
	if !strings.Contains(env.userOut.String(), "✗ Neither the packages nor the expr input is given") {
		t.Errorf("error should be printed for the job log, got:\n%s", env.userOut.String())
	}
}

func TestInstallCommand_SeparatorsOnly(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := executeCommand("install", "--packages", " , ,")
	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Fatalf("exit code = %d, want %d (err: %v)", code, errors.ExitConfigError, err)
	}
	if env.fs.TempDirsCreated() != 0 || len(env.platform.Paths) != 0 {
		t.Error("nothing should be created or published")
	}
}

func TestCleanupCommand(t *testing.T) {
	env := setupTestEnv(t)

	if _, _, err := executeCommand("install", "--packages", "nixpkgs#hello"); err != nil {
		t.Fatalf("install failed: %v", err)
	}
	if !env.fs.Exists("/tmp/nix-profile-1") {
		t.Fatal("profile directory should exist after install")
	}

	if _, _, err := executeCommand("cleanup"); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if env.fs.Exists("/tmp/nix-profile-1") {
		t.Error("profile directory should be removed")
	}
	if got := env.store.Get(state.ProfileDirKey); got != "" {
		t.Errorf("state = %q, want empty", got)
	}

	// Running cleanup again is harmless.
	if _, _, err := executeCommand("cleanup"); err != nil {
		t.Fatalf("second cleanup failed: %v", err)
	}
	if len(env.platform.Failures) != 0 {
		t.Errorf("unexpected failures: %v", env.platform.Failures)
	}
}

func TestCleanupCommand_Failure(t *testing.T) {
	env := setupTestEnv(t)
	_ = env.store.Set(state.ProfileDirKey, "/tmp/nix-profile-1")
	env.fs.RemoveAllErr = fmt.Errorf("device busy")

	_, _, err := executeCommand("cleanup")
	if code := errors.GetExitCode(err); code != errors.ExitCleanupError {
		t.Fatalf("exit code = %d, want %d (err: %v)", code, errors.ExitCleanupError, err)
	}
	if len(env.platform.Failures) != 1 || !strings.HasPrefix(env.platform.Failures[0], "Cleanup failed: ") {
		t.Errorf("Failures = %v, want one cleanup failure", env.platform.Failures)
	}
}

func TestPlanCommand_JSON(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := executeCommand("plan", "--packages", "nixpkgs#jq", "--nix-args", "--impure", "--format", "json")
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	var plan profile.Plan
	if err := json.Unmarshal([]byte(stdout), &plan); err != nil {
		t.Fatalf("plan output is not JSON: %v\n%s", err, stdout)
	}

	want := profile.Plan{
		ProfileDir: "/tmp/nix-profile-*/.nix-profile",
		Invocations: []profile.Invocation{{
			Step: "packages",
			Argv: []string{"nix", "profile", "install", "--profile", "/tmp/nix-profile-*/.nix-profile", "--impure", "nixpkgs#jq"},
		}},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
	if len(env.runner.CommandsWithPrefix("nix profile install")) != 0 {
		t.Error("plan must not install")
	}
}

func TestPlanCommand_YAML(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddDir("/tmp/nix-profile-5")
	_ = env.store.Set(state.ProfileDirKey, "/tmp/nix-profile-5")

	stdout, _, err := executeCommand("plan", "--expr", "pkgs.hello")
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	var plan profile.Plan
	if err := yaml.Unmarshal([]byte(stdout), &plan); err != nil {
		t.Fatalf("plan output is not YAML: %v\n%s", err, stdout)
	}
	if !plan.Reused || plan.ProfileDir != "/tmp/nix-profile-5/.nix-profile" {
		t.Errorf("plan should reuse the recorded profile, got %+v", plan)
	}
	if len(plan.Invocations) != 1 || plan.Invocations[0].Step != "expression" {
		t.Errorf("unexpected invocations: %+v", plan.Invocations)
	}
}

func TestPlanCommand_UnknownFormat(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand("plan", "--packages", "hello", "--format", "xml")
	if !errors.HasCode(err, errors.ExitConfigError) {
		t.Errorf("err = %v, want config error", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{"verbose", "json", "config"} {
		if flags.Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestCommandRejectsArgs(t *testing.T) {
	setupTestEnv(t)

	for _, sub := range []string{"install", "cleanup", "plan"} {
		if _, _, err := executeCommand(sub, "extra"); err == nil {
			t.Errorf("%s should reject positional arguments", sub)
		}
	}
}
