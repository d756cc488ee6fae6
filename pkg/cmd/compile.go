package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func compile(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "Compile the project's models to SQL",
		Flags: []cli.Flag{
			fastFlag(),
			modelsFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return env.Execute(ctx, dbt.Compile(dbt.CompileOptions{
				Fast:   cmd.Bool("fast"),
				Models: cmd.StringSlice("models"),
			}))
		},
	}
}
