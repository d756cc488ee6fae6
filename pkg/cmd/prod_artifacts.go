package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

func prodArtifacts(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "prod-artifacts",
		Usage: "Download the dbt artifacts from production (no-op)",
		Description: `This command does nothing since fetching production artifacts depends on where
they are stored. Projects are expected to override it (palm override --name prod-artifacts)
and copy the artifacts from dbt_artifacts_prod into dbt_artifacts_local.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env.Console().Error("No-op command! Please override this command in your own project by running: palm override --name prod-artifacts")
			return ErrNotImplemented
		},
	}
}
