package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func seed(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the project's seeds",
		Flags: []cli.Flag{
			selectFlag(),
			excludeFlag(),
			&cli.BoolFlag{
				Name:    "no-full-refresh",
				Aliases: []string{"nf"},
				Usage:   "insert seeds instead of recreating the tables",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "drop the branch schemas once seeding completes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return env.Execute(ctx, dbt.Seed(dbt.SeedOptions{
				Select:        cmd.StringSlice("select"),
				Exclude:       cmd.StringSlice("exclude"),
				NoFullRefresh: cmd.Bool("no-full-refresh"),
				Clean:         cmd.Bool("clean"),
			}))
		},
	}
}
