package cmd

import "github.com/urfave/cli/v3"

// Flags shared by the dbt commands. Each call returns a new flag so commands don't share state.

func selectFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "select",
		Aliases: []string{"s"},
		Usage:   "the nodes to include (see dbt docs on --select)",
	}
}

func excludeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "exclude",
		Aliases: []string{"e"},
		Usage:   "the nodes to exclude (see dbt docs on --exclude)",
	}
}

func modelsFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "models",
		Aliases: []string{"m"},
		Usage:   "the models to include (see dbt docs on --models)",
	}
}

func fastFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "fast",
		Usage: "skip clean and deps",
	}
}

func persistFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "persist",
		Usage: "keep the branch schemas after the command completes",
	}
}

func noSeedFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-seed",
		Usage: "skip the full refresh seed",
	}
}

func noFailFastFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-fail-fast",
		Usage: "keep going when a model or test fails",
	}
}

func deferFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "defer",
		Usage: "defer to the artifacts in dbt_artifacts_local for unselected nodes",
	}
}
