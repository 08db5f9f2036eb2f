package system

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
)

func TestCommandLine(t *testing.T) {
	got := CommandLine("nix", "profile", "install", "--expr", "let x = 1; in x")
	want := `nix profile install --expr 'let x = 1; in x'`
	if got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}

func TestOSRunner_CapturesOutput(t *testing.T) {
	r := &osRunner{}

	res, err := r.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2; exit 3"}, ExecOptions{Silent: true, IgnoreReturnCode: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if res.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "out\n")
	}
	if res.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "err\n")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestOSRunner_StrictModeFailsOnNonZeroExit(t *testing.T) {
	r := &osRunner{}

	res, err := r.Run(context.Background(), "sh", []string{"-c", "exit 1"}, ExecOptions{Silent: true})
	if !errors.HasCode(err, errors.ExitProcessError) {
		t.Fatalf("Run error = %v, want process error", err)
	}
	if !strings.Contains(err.Error(), "failed with exit code 1") {
		t.Errorf("error %q should mention the exit code", err)
	}
	if res == nil || res.ExitCode != 1 {
		t.Errorf("result should be returned alongside the error, got %+v", res)
	}
}

func TestOSRunner_MissingBinary(t *testing.T) {
	r := &osRunner{}

	res, err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz", nil, ExecOptions{IgnoreReturnCode: true})
	if !errors.HasCode(err, errors.ExitProcessError) {
		t.Fatalf("Run error = %v, want process error", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
}

func TestOSRunner_EchoesWhenNotSilent(t *testing.T) {
	r := &osRunner{}
	var out, errOut bytes.Buffer

	_, err := r.Run(context.Background(), "sh", []string{"-c", "echo hi"}, ExecOptions{Stdout: &out, Stderr: &errOut})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !strings.HasPrefix(out.String(), "[command]") {
		t.Errorf("output should start with the command echo, got %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "hi\n") {
		t.Errorf("output should stream the command output, got %q", out.String())
	}
}
