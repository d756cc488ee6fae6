package cmd

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/urfave/cli/v3"
)

const defaultCycles = 2

func cycle(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "cycle",
		Usage:     "Run and test the project several times in a row",
		ArgsUsage: "[count]",
		Description: `Runs count (default 2) consecutive run/test pairs. This is handy for checking that
incremental models behave on subsequent runs.

Examples:
  palm-dbt cycle
  palm-dbt cycle 3 --fast --models my_incremental_model`,
		Flags: []cli.Flag{
			fastFlag(),
			persistFlag(),
			modelsFlag(),
			selectFlag(),
			noSeedFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("at most one count argument is allowed")
			}

			count := defaultCycles
			if cmd.Args().Present() {
				n, err := strconv.Atoi(cmd.Args().First())
				if err != nil {
					return errors.Wrapf(err, "invalid count %q", cmd.Args().First())
				}
				count = n
			}

			c, err := dbt.Cycle(dbt.CycleOptions{
				Count:   count,
				Fast:    cmd.Bool("fast"),
				Persist: cmd.Bool("persist"),
				NoSeed:  cmd.Bool("no-seed"),
				Models:  cmd.StringSlice("models"),
				Select:  cmd.StringSlice("select"),
			})
			if err != nil {
				return err
			}

			return env.Execute(ctx, c)
		},
	}
}
