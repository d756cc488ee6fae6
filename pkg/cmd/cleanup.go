package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func cleanup(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "Drop the branch schemas and stop the project's containers",
		Description: `Runs the drop_branch_schemas macro for the current branch, then stops any
containers still running for the project (e.g. a dbt-docs server). With --local no containers
are touched.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "deps",
				Usage: "clean and install dependencies before dropping the schemas",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := env.Execute(ctx, dbt.Cleanup(dbt.CleanupOptions{Deps: cmd.Bool("deps")})); err != nil {
				return err
			}

			out := env.Console()
			if env.Local {
				out.Success("Remote cleanup complete!")
				return nil
			}

			out.Info("Remote cleanup complete! Cleaning your local docker env...")

			palm, err := env.Config.Palm(env.Dir)
			if err != nil {
				return err
			}

			engine, closeEngine, err := env.Engine()
			if err != nil {
				return err
			}
			defer closeEngine()

			stopped, err := engine.StopProject(ctx, palm.ImageName)
			if err != nil {
				return err
			}

			for _, name := range stopped {
				out.Info("Stopped %s", name)
			}

			out.Success("Local cleanup complete!")
			return nil
		},
	}
}
