package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// DefaultShell interprets commands for the Shell runner.
const DefaultShell = "sh"

// Shell runs commands with the local shell (sh -c <command>).
type Shell struct {
	// Dir is the working directory. Defaults to the current directory.
	Dir string

	// Shell overrides DefaultShell.
	Shell string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes command with env added to the current process environment.
func (s *Shell) Run(ctx context.Context, command string, env map[string]string) (Result, error) {
	shell := s.Shell
	if shell == "" {
		shell = DefaultShell
	}

	slog.Debug("running command", "runner", "shell", "cmd", command, "dir", s.Dir)

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), Environ(env)...)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Run()
	if err == nil {
		return Succeeded(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Failed(exitErr.ExitCode()), nil
	}

	return Result{}, errors.Wrapf(err, "failed to run command: %s", command)
}
