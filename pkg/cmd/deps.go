package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func deps(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "deps",
		Usage: "Install the project's dbt packages",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return env.Execute(ctx, dbt.Deps())
		},
	}
}
