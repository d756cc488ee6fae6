package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func test(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Test the dbt project",
		Description: `Cleans, installs dependencies, seeds and tests the project, dropping the branch
schemas at the end. --fast skips clean and deps, --persist keeps the schemas.

Examples:
  palm-dbt test
  palm-dbt test --fast --persist --models my_model`,
		Flags: []cli.Flag{
			fastFlag(),
			persistFlag(),
			modelsFlag(),
			selectFlag(),
			noSeedFlag(),
			noFailFastFlag(),
			deferFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := dbt.TestOptions{
				Fast:       cmd.Bool("fast"),
				Persist:    cmd.Bool("persist"),
				NoSeed:     cmd.Bool("no-seed"),
				NoFailFast: cmd.Bool("no-fail-fast"),
				Models:     cmd.StringSlice("models"),
				Select:     cmd.StringSlice("select"),
				Defer:      cmd.Bool("defer"),
			}

			if opts.Defer {
				state, err := env.StatePath()
				if err != nil {
					return err
				}
				opts.State = state
			}

			return env.Execute(ctx, dbt.Test(opts))
		},
	}
}
