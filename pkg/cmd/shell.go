package cmd

import (
	"context"
	"sort"
	"strings"

	"github.com/pseudomuto/palm-dbt/pkg/docker"
	"github.com/urfave/cli/v3"
)

func shell(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Open an interactive shell in the project's image",
		Description: `Starts bash inside the project's docker compose service with the branch
environment set, so dbt commands can be run by hand. With --local the shell runs on the
host instead.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			vars, err := env.DevVars(ctx)
			if err != nil {
				return err
			}

			command := docker.DefaultShell
			if !env.Local {
				palm, err := env.Config.Palm(env.Dir)
				if err != nil {
					return err
				}

				command = composeShell(palm.ImageName, vars)
			}

			r := env.Runner
			if r == nil {
				r = env.shell()
			}

			res, err := r.Run(ctx, command, vars)
			if err != nil {
				return err
			}

			if !res.Success {
				env.Console().Result(false, res.Message)
				return ErrCommandFailed
			}

			return nil
		},
	}
}

// composeShell starts bash in service, forwarding each of vars from the host environment.
func composeShell(service string, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{"docker", "compose", "run", "--rm"}
	for _, k := range keys {
		parts = append(parts, "-e", k)
	}

	return strings.Join(append(parts, service, docker.DefaultShell), " ")
}
