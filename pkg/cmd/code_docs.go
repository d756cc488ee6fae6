package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

const (
	// CodeDocsURL is where the code documentation service is published.
	CodeDocsURL = "http://localhost:8989"

	defaultCodeDocsService = "pdp_code_documentation"
)

func codeDocs(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "code-docs",
		Usage: "Serve the project's code documentation",
		Description: `Starts the code documentation compose service in the background and opens
` + CodeDocsURL + ` in the browser.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "service",
				Usage: "the docker compose service serving the documentation",
				Value: defaultCodeDocsService,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := env.Console()
			out.Info("Launching code documentation at %s", CodeDocsURL)

			r := env.Runner
			if r == nil {
				r = env.shell()
			}

			res, err := r.Run(ctx, "docker compose run --detach --rm --service-ports "+cmd.String("service"), nil)
			if err != nil {
				return err
			}

			if !res.Success {
				out.Result(false, res.Message)
				return ErrCommandFailed
			}

			env.OpenBrowser(CodeDocsURL)
			return nil
		},
	}
}
