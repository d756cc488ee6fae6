package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/config"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"github.com/pseudomuto/palm-dbt/pkg/containerize"
	"github.com/urfave/cli/v3"
)

func containerizeCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "containerize",
		Usage: "Generate the Docker files for the project",
		Description: `Writes a Dockerfile, docker-compose.yml, scripts/entrypoint.sh and .dockerignore
for the project. Existing files are left untouched.

The dbt version comes from --version, then the project's require-dbt-version and finally
a prompt defaulting to the configured dbt_version. Only dbt 0.19.x through 0.21.x are
supported.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "version",
				Usage: "the dbt version to install (e.g. 0.21.0)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proj, err := env.Project()
			if err != nil {
				return err
			}

			palm, err := env.Config.Palm(env.Dir)
			if err != nil {
				return err
			}

			version := cmd.String("version")
			if version == "" {
				version = proj.Dbt().ConfiguredDbtVersion()
			}

			if version == "" {
				if version, err = env.Prompter().Ask("Enter dbt version to use", env.defaultDbtVersion()); err != nil {
					return err
				}
			}

			c := &containerize.Containerizer{
				ProjectName: palm.ImageName,
				DbtVersion:  version,
				ModulesPath: proj.Dbt().ModulesPath,
			}

			created, err := c.Run(proj.Root())
			if err != nil {
				return err
			}

			out := env.Console()
			for _, path := range created {
				out.Info("Created %s", path)
			}

			out.Success("Containerized %s", palm.ImageName)
			return nil
		},
	}
}

// defaultDbtVersion is the plugin's configured dbt_version, if any.
func (e *Env) defaultDbtVersion() string {
	cfg, err := e.Config.Plugin(e.Dir)
	if err != nil {
		if !errors.Is(err, config.ErrConfigurationMissing) && !os.IsNotExist(errors.Cause(err)) {
			e.Console().Warn("Ignoring plugin config: %v", err)
		}

		return consts.DefaultDbtVersion
	}

	return cfg.DbtVersion
}
