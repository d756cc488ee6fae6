package cmd

import (
	"context"

	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

func snapshot(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Run the project's snapshots",
		Flags: []cli.Flag{
			fastFlag(),
			persistFlag(),
			selectFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return env.Execute(ctx, dbt.Snapshot(dbt.SnapshotOptions{
				Fast:    cmd.Bool("fast"),
				Persist: cmd.Bool("persist"),
				Select:  cmd.StringSlice("select"),
			}))
		},
	}
}
