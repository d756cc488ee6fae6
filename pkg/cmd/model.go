package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/pseudomuto/palm-dbt/pkg/project"
	"github.com/urfave/cli/v3"
)

func model(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "model",
		Usage: "dbt model tools",
		Commands: []*cli.Command{
			modelNew(env),
		},
	}
}

func modelNew(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Generate a new model",
		Description: `Scaffolds the SQL, YAML and Markdown files for a new model. Existing files are
never overwritten.

With --use-ref-file the model is built from the SQL in ` + consts.RefFile + `
(created on first use) and then run with dbt.

Examples:
  palm-dbt model new --name users
  palm-dbt model new --name orders --model-type fact --use-ref-file`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Usage:    "the model name, without the dim_ or fact_ prefix",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "model-type",
				Usage: fmt.Sprintf("one of %s", strings.Join(project.ModelTypes, ", ")),
				Value: project.DefaultModelType,
			},
			&cli.BoolFlag{
				Name:  "use-ref-file",
				Usage: "build the model from the reference SQL file",
			},
			&cli.BoolFlag{
				Name:  "no-run",
				Usage: "don't run the model built from the reference SQL file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proj, err := env.Project()
			if err != nil {
				return err
			}

			out := env.Console()
			out.Info("Generating your new %s %s!", cmd.String("name"), cmd.String("model-type"))

			res, err := proj.NewModel(project.ModelOptions{
				Name:       cmd.String("name"),
				Type:       cmd.String("model-type"),
				UseRefFile: cmd.Bool("use-ref-file"),
			})
			if err != nil {
				return err
			}

			if res.RefFilesCreated {
				out.Warn("Created %s. Add your source SQL to it and re-run the command.", consts.RefFile)
				return nil
			}

			for _, path := range res.Created {
				out.Info("Created %s", path)
			}

			if len(res.Created) == 0 {
				out.Warn("%s already exists, nothing to do", res.Model)
				return nil
			}

			out.Success("Generated %s", res.Model)
			if !cmd.Bool("use-ref-file") || cmd.Bool("no-run") {
				return nil
			}

			return env.Execute(ctx, dbt.Run(dbt.RunOptions{
				NoSeed: true,
				Models: []string{"@" + res.Model},
			}))
		},
	}
}
