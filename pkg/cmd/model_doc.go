package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/docindex"
	"github.com/pseudomuto/palm-dbt/pkg/modeldoc"
	"github.com/pseudomuto/palm-dbt/pkg/prompt"
	"github.com/urfave/cli/v3"
)

func modelDoc(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "model-doc",
		Usage:     "Generate the baseline documentation for a model",
		ArgsUsage: "<model.sql>",
		Description: `Writes <model>.md into the documentation directory matching the model's type and
<model>.yml next to the model. Columns with an existing documentation snippet reference it,
the rest get a placeholder (or a description asked for with --elaborate).

Examples:
  palm-dbt model-doc models/dim/dim_users.sql
  palm-dbt model-doc models/fact/fact_orders.sql --grain "one row per order" --elaborate`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "grain",
				Usage: "the grain of the model (asked for when missing)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "a user facing description of the model (asked for when missing)",
			},
			&cli.BoolFlag{
				Name:  "elaborate",
				Usage: "ask for a description of each undocumented column",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one model path argument is required")
			}

			proj, err := env.Project()
			if err != nil {
				return err
			}

			p := env.Prompter()
			out := env.Console()

			req := modeldoc.Request{
				ModelPath:   cmd.Args().First(),
				Grain:       cmd.String("grain"),
				Description: cmd.String("description"),
			}

			if req.Grain == "" {
				if req.Grain, err = p.Ask("What is the grain of the model?", ""); err != nil {
					return err
				}
			}

			if req.Description == "" {
				if req.Description, err = p.Ask("Please provide a user-facing description for this model", ""); err != nil {
					return err
				}
			}

			if cmd.Bool("elaborate") {
				req.Elaborate = elaborate(p)
			}

			gen := &modeldoc.Generator{
				Root:         proj.Root(),
				ModelDocsDir: proj.ModelDocsDir(),
				Index:        docindex.New(os.DirFS(proj.Root()), proj.ColumnDocDirs()...),
				Confirm:      p,
				Resolve:      resolver(p, out.Warn),
			}

			res, err := gen.Generate(ctx, req)
			if err != nil {
				return err
			}

			report := func(path string, written bool) {
				if written {
					out.Success("Generated %s", path)
					return
				}
				out.Warn("Skipped %s", path)
			}

			report(res.MarkdownPath, res.MarkdownWritten)
			report(res.SchemaPath, res.SchemaWritten)
			return nil
		},
	}
}

// resolver asks the user to pick a documentation type for models whose path doesn't identify
// exactly one.
func resolver(p *prompt.Prompter, warn func(string, ...any)) modeldoc.Resolver {
	return func(dest modeldoc.Destination) (string, error) {
		switch dest.Kind {
		case modeldoc.Ambiguous:
			return p.Choose("The model path matches several documentation types. Which one is it?", dest.Candidates)
		default:
			warn("Could not determine the model type from its path")
			if len(dest.Candidates) > 0 {
				return p.Choose("Models should be in one of these directories. Which one should be used?", dest.Candidates)
			}

			return p.Ask("Documentation type (a directory to create under the model docs)", "")
		}
	}
}

func elaborate(p *prompt.Prompter) func(string) string {
	return func(column string) string {
		answer, err := p.Ask(fmt.Sprintf("Description for %s (blank to skip)", column), "")
		if err != nil {
			return ""
		}

		return strings.TrimSpace(answer)
	}
}
