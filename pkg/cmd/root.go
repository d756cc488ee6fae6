package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Env        *Env
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the palm-dbt CLI application with the fx lifecycle. The application is executed
// once fx starts and shuts the app down with the resulting exit code.
//
// Global Flags:
//   - --dir, -d: the dbt project directory (defaults to the current directory)
//   - --local: run dbt on the host instead of inside the project's docker image
//   - --verbose, -v: enable debug logging
//
// Exit codes: 0 on success, 1 when a command fails and 2 for commands that are expected to be
// overridden by the project (see ErrNotImplemented).
//
// Example usage:
//
//	palm-dbt run --select tag:daily --no-seed
//	palm-dbt --dir ./analytics test --fast --persist
//	palm-dbt --local dbt ls --selector nightly
func Run(p Params) {
	app := NewApp(p.Env, p.Version, p.Commands)

	p.Lifecycle.Append(fx.StartHook(func() {
		_ = p.Shutdowner.Shutdown(fx.ExitCode(execute(p.Ctx, app, p.Args)))
	}))
}

// NewApp creates the root command.
func NewApp(env *Env, version *Version, commands []*cli.Command) *cli.Command {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", version.Timestamp)
	}

	return &cli.Command{
		Name:  "palm-dbt",
		Usage: "A developer toolkit for dbt projects",
		Description: `palm-dbt wraps the dbt CLI. Commands run inside the project's docker image
with a schema isolated to the current user and git branch, and a handful of
generators scaffold models, documentation and container files.`,
		Version:   version.Version,
		Reader:    env.Stdin,
		Writer:    env.Stdout,
		ErrWriter: env.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the dbt project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:    "local",
				Usage:   "run dbt on the host instead of in docker",
				Sources: cli.EnvVars("PALM_DBT_LOCAL"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			dir := cmd.String("dir")
			info, err := os.Stat(dir)
			if err != nil {
				return ctx, errors.Wrapf(err, "failed to stat project directory %s", dir)
			}

			if !info.IsDir() {
				return ctx, errors.Errorf("%s is not a directory", dir)
			}

			env.Dir = dir
			env.Local = cmd.Bool("local")
			return ctx, nil
		},
		Commands: commands,
	}
}

// execute runs app and maps the outcome to an exit code.
func execute(ctx context.Context, app *cli.Command, args []string) int {
	err := app.Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCommandFailed):
		// the runner's message has already been printed
		return 1
	case errors.Is(err, ErrNotImplemented):
		return 2
	default:
		slog.Error("Error running command", "err", err)
		return 1
	}
}
