// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"io"
	"io/fs"
	"os"
)

// ExecResult is the captured outcome of one external command.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExecOptions controls how a command is run.
type ExecOptions struct {
	// Silent suppresses the command echo and live output. Output is
	// captured either way.
	Silent bool

	// IgnoreReturnCode makes a non-zero exit a normal result instead of an error.
	IgnoreReturnCode bool

	// Dir is the working directory. Empty means the current one.
	Dir string

	// Stdout and Stderr receive live output when not silent.
	// They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner abstracts command execution for testability.
type Runner interface {
	// Run executes name with args and returns its captured output.
	// It fails when the command cannot be started, or when it exits
	// non-zero and IgnoreReturnCode is not set.
	Run(ctx context.Context, name string, args []string, opts ExecOptions) (*ExecResult, error)
}

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// RemoveAll removes path and any children it contains.
	RemoveAll(path string) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// MkdirTemp creates a new uniquely named directory in dir.
	// An empty dir means the OS temp directory.
	MkdirTemp(dir, pattern string) (string, error)

	// TempDir returns the directory used for temporary files.
	TempDir() string

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool
}

// Default instances using real OS operations.
var (
	defaultFS     FileSystem = &osFileSystem{}
	defaultRunner Runner     = &osRunner{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultRunner returns the default Runner implementation.
func DefaultRunner() Runner {
	return defaultRunner
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *osFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

func (f *osFileSystem) TempDir() string {
	return os.TempDir()
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *osFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
