package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/pseudomuto/palm-dbt/pkg/docker"
	"github.com/urfave/cli/v3"
)

// DocsPort is the port dbt docs serve listens on.
const DocsPort = 8080

func dbtDocs(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "dbt-docs",
		Usage: "Generate and serve the dbt documentation site",
		Description: fmt.Sprintf(`Generates the documentation site and serves it at http://localhost:%d. The
server runs in a detached container labelled with the project, so it can be stopped with
palm-dbt cleanup. With --local the server runs in the foreground on the host.`, DocsPort),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if env.Local {
				return env.Execute(ctx, dbt.Docs())
			}

			vars, err := env.DevVars(ctx)
			if err != nil {
				return err
			}

			opts, err := env.dockerOptions()
			if err != nil {
				return err
			}

			engine, closeEngine, err := env.Engine()
			if err != nil {
				return err
			}
			defer closeEngine()

			containerEnv := maps.Clone(opts.Env)
			if containerEnv == nil {
				containerEnv = make(map[string]string, len(vars))
			}
			maps.Copy(containerEnv, vars)

			name := opts.Image + "_docs"
			if err := stopDocs(ctx, engine, opts.Image, name); err != nil {
				return err
			}

			slog.Debug("starting docs server", "container", name, "port", DocsPort)

			if err := engine.Start(ctx, docker.ContainerOptions{
				Name:       name,
				Image:      opts.Image,
				Project:    opts.Image,
				Cmd:        []string{docker.DefaultShell, "-c", dbt.Docs().Render()},
				WorkingDir: docker.WorkDir,
				Env:        containerEnv,
				Ports:      map[int]int{DocsPort: DocsPort},
				Volumes: append([]docker.ContainerVolume{{
					HostPath:      opts.ProjectDir,
					ContainerPath: docker.WorkDir,
				}}, opts.Mounts...),
			}); err != nil {
				return err
			}

			url := fmt.Sprintf("http://localhost:%d", DocsPort)
			env.Console().Success("Serving dbt docs at %s (stop with `palm-dbt cleanup`)", url)
			env.OpenBrowser(url)
			return nil
		},
	}
}

// stopDocs replaces a docs server left running by a previous invocation.
func stopDocs(ctx context.Context, engine *docker.Engine, project, name string) error {
	running, err := engine.List(ctx, project)
	if err != nil {
		return err
	}

	for _, ctr := range running {
		if ctr.Name() != name {
			continue
		}

		slog.Debug("stopping previous docs server", "container", name, "id", ctr.ID)
		if err := engine.Stop(ctx, ctr.ID); err != nil {
			return err
		}
	}

	return nil
}
