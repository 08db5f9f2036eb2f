package system

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
)

// osRunner implements Runner using real OS processes.
type osRunner struct{}

func (r *osRunner) Run(ctx context.Context, name string, args []string, opts ExecOptions) (*ExecResult, error) {
	cmdline := CommandLine(name, args...)

	binary, err := exec.LookPath(name)
	if err != nil {
		return nil, errors.ProcessFailed(cmdline, err)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = opts.Dir
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if !opts.Silent {
		out, errOut := opts.Stdout, opts.Stderr
		if out == nil {
			out = os.Stdout
		}
		if errOut == nil {
			errOut = os.Stderr
		}
		fmt.Fprintf(out, "[command]%s %s\n", binary, shellquote.Join(args...))
		cmd.Stdout = io.MultiWriter(&stdoutBuf, out)
		cmd.Stderr = io.MultiWriter(&stderrBuf, errOut)
	}

	logging.Debug("running command", "command", cmdline, "dir", opts.Dir)

	runErr := cmd.Run()
	result := &ExecResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, errors.ProcessFailed(cmdline, runErr)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	logging.Debug("command finished", "command", cmdline, "exitCode", result.ExitCode)

	return result, checkExit(binary, cmdline, result, opts)
}

// checkExit returns a ProcessError for a non-zero exit unless the caller
// asked to inspect the exit code itself.
func checkExit(binary, cmdline string, result *ExecResult, opts ExecOptions) error {
	if result.ExitCode == 0 || opts.IgnoreReturnCode {
		return nil
	}
	return errors.ProcessFailed(cmdline, fmt.Errorf("the process '%s' failed with exit code %d", binary, result.ExitCode))
}

// CommandLine renders name and args the way a shell would need them quoted.
func CommandLine(name string, args ...string) string {
	return shellquote.Join(append([]string{name}, args...)...)
}
