package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/config"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"github.com/urfave/cli/v3"
)

func dbtConfig(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "dbt-config",
		Usage: "Set up the palm dbt configuration",
		Description: `Asks where dbt artifacts live and writes ` + consts.PluginConfigFile + `.
Values can be overridden at runtime with PALM_DBT_* environment variables.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := env.Console()
			out.Info("Setting up your palm dbt configuration")

			p := env.Prompter()
			cfg := &config.PluginConfig{DbtVersion: consts.DefaultDbtVersion}

			hasProd, err := p.Confirm("Do you have production dbt artifacts saved locally?")
			if err != nil {
				return err
			}

			if hasProd {
				if cfg.ArtifactsProd, err = p.Ask("Prod artifacts location", ""); err != nil {
					return err
				}
			}

			if cfg.ArtifactsLocal, err = p.Ask("Local artifacts location", consts.DefaultArtifactsLocal); err != nil {
				return err
			}

			if err := cfg.Write(env.Dir); err != nil {
				return err
			}

			out.Success("Wrote %s", consts.PluginConfigFile)
			return nil
		},
	}
}
