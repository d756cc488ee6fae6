package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func run(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the dbt project",
		Description: `Seeds (with a full refresh) and runs the project against the current branch's
schema. Pass --clean to drop the branch schemas afterwards.

Examples:
  palm-dbt run
  palm-dbt run --select tag:daily --no-seed
  palm-dbt run --models my_model --full-refresh --defer`,
		Flags: []cli.Flag{
			selectFlag(),
			modelsFlag(),
			excludeFlag(),
			noSeedFlag(),
			noFailFastFlag(),
			deferFlag(),
			&cli.BoolFlag{
				Name:  "full-refresh",
				Usage: "rebuild incremental models from scratch",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "drop the branch schemas once the run completes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := dbt.RunOptions{
				NoSeed:      cmd.Bool("no-seed"),
				Select:      cmd.StringSlice("select"),
				Models:      cmd.StringSlice("models"),
				Exclude:     cmd.StringSlice("exclude"),
				NoFailFast:  cmd.Bool("no-fail-fast"),
				FullRefresh: cmd.Bool("full-refresh"),
				Clean:       cmd.Bool("clean"),
				Defer:       cmd.Bool("defer"),
			}

			if opts.Defer {
				state, err := env.StatePath()
				if err != nil {
					return err
				}
				opts.State = state
			}

			return env.Execute(ctx, dbt.Run(opts))
		},
	}
}
