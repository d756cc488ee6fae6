package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func dbtCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "dbt",
		Usage:     "Pass a command through to dbt",
		ArgsUsage: "<command> [args...]",
		Description: `Runs any dbt command with the branch environment. The most frequently used dbt
options are available as flags. Anything else can be passed with --options.

Examples:
  palm-dbt dbt run --select my_model --full-refresh
  palm-dbt dbt run-operation my_macro --cleanup
  palm-dbt dbt ls --options "--resource-type model --output json"`,
		Flags: []cli.Flag{
			selectFlag(),
			excludeFlag(),
			&cli.StringFlag{
				Name:  "selector",
				Usage: "the selector to use, defined in selectors.yml",
			},
			&cli.BoolFlag{
				Name:    "fail-fast",
				Aliases: []string{"x"},
				Usage:   "stop at the first failure",
			},
			&cli.BoolFlag{
				Name:  "full-refresh",
				Usage: "rebuild incremental models from scratch",
			},
			&cli.BoolFlag{
				Name:  "seed",
				Usage: "load seeds before running the command",
			},
			&cli.BoolFlag{
				Name:  "cleanup",
				Usage: "drop the branch schemas after running the command",
			},
			&cli.StringFlag{
				Name:    "options",
				Aliases: []string{"o"},
				Usage:   "a string of dbt options passed through verbatim",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := dbt.Passthrough(dbt.PassthroughOptions{
				Args:        cmd.Args().Slice(),
				Select:      cmd.StringSlice("select"),
				Exclude:     cmd.StringSlice("exclude"),
				Selector:    cmd.String("selector"),
				FailFast:    cmd.Bool("fail-fast"),
				FullRefresh: cmd.Bool("full-refresh"),
				Seed:        cmd.Bool("seed"),
				Cleanup:     cmd.Bool("cleanup"),
				Options:     cmd.String("options"),
			})
			if err != nil {
				return err
			}

			return env.Execute(ctx, c)
		},
	}
}
