// Package testutil holds helpers for testing CLI commands.
package testutil

import (
	"context"
	"testing"

	"github.com/pseudomuto/palm-dbt/pkg/runner"
	"github.com/urfave/cli/v3"
)

// RunCommand executes a command with test context
func RunCommand(t *testing.T, command *cli.Command, args []string) error {
	t.Helper()
	return RunCommandWithContext(context.Background(), t, command, args)
}

// RunCommandWithContext executes a command with a custom context
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, args []string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "palm-dbt",
		Commands: []*cli.Command{command},
	}

	// Prepend command name to args
	fullArgs := append([]string{"palm-dbt", command.Name}, args...)

	return app.Run(ctx, fullArgs)
}

// Call is a command received by a Recorder.
type Call struct {
	Command string
	Env     map[string]string
}

// Recorder is a runner.Runner that records the commands it receives and replies with Result.
type Recorder struct {
	Result runner.Result
	Err    error
	Calls  []Call
}

// NewRecorder creates a Recorder whose commands succeed.
func NewRecorder() *Recorder {
	return &Recorder{Result: runner.Succeeded()}
}

// Run implements runner.Runner.
func (r *Recorder) Run(_ context.Context, command string, env map[string]string) (runner.Result, error) {
	r.Calls = append(r.Calls, Call{Command: command, Env: env})
	return r.Result, r.Err
}

// Commands returns the recorded commands in order.
func (r *Recorder) Commands() []string {
	cmds := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		cmds[i] = c.Command
	}

	return cmds
}
