package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

func install(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the palm dbt macros into the project",
		Description: `palm-dbt uses branch schemas so running and testing dbt is idempotent between
changesets. This installs the macros enabling that into the project's macro path:

  generate_schema_name - builds the schema name for the current git branch. It requires
                         PALM_DBT_ENV to be set to DEVELOPMENT, CI or PROD.
  drop_branch_schemas  - drops the schemas matching the current branch. It is run after
                         each command unless --persist is given.

Nothing is installed when either macro already exists.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proj, err := env.Project()
			if err != nil {
				return err
			}

			installed, err := proj.InstallMacros()
			if err != nil {
				return err
			}

			out := env.Console()
			if !installed {
				out.Success("It looks like you already installed palm-dbt macros!")
				return nil
			}

			out.Success("Palm dbt macros installed!")
			return nil
		},
	}
}
