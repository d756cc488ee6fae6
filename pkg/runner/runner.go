// Package runner executes rendered dbt commands.
//
// A Runner takes a shell command string and the environment variables to run it with and
// reports whether it succeeded. The Shell runner executes commands on the local machine;
// docker.Runner executes them inside the project's image.
//
// Example:
//
//	r := &runner.Shell{Dir: ".", Stdout: os.Stdout, Stderr: os.Stderr}
//	res, err := r.Run(ctx, dbt.Deps().Render(), devenv.Vars(user, branch))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(res.Success, res.Message)
package runner

import (
	"context"
	"fmt"
	"sort"
)

type (
	// Runner executes a shell command with additional environment variables.
	//
	// A command that runs but fails is reported through Result, not as an error. Errors are
	// reserved for commands that could not be executed at all.
	Runner interface {
		Run(ctx context.Context, command string, env map[string]string) (Result, error)
	}

	// Result is the outcome of a command.
	Result struct {
		Success bool
		Message string
	}

	// Func adapts a function to the Runner interface.
	Func func(ctx context.Context, command string, env map[string]string) (Result, error)
)

// Run calls f(ctx, command, env).
func (f Func) Run(ctx context.Context, command string, env map[string]string) (Result, error) {
	return f(ctx, command, env)
}

// Succeeded returns the Result of a command that exited cleanly.
func Succeeded() Result {
	return Result{Success: true, Message: "Success!"}
}

// Failed returns the Result of a command that exited with code.
func Failed(code int) Result {
	return Result{Message: fmt.Sprintf("Command failed with exit code %d", code)}
}

// Environ renders env as sorted KEY=VALUE pairs.
func Environ(env map[string]string) []string {
	res := make([]string, 0, len(env))
	for k, v := range env {
		res = append(res, k+"="+v)
	}

	sort.Strings(res)
	return res
}
