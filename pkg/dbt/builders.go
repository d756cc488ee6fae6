package dbt

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidCount is returned by Cycle when fewer than one iteration is requested.
	ErrInvalidCount = errors.New("cycle count must be at least 1")

	// ErrNoCommand is returned by Passthrough when no dbt command was given.
	ErrNoCommand = errors.New("you must provide a dbt command")
)

type (
	// RunOptions configure Run.
	RunOptions struct {
		NoSeed      bool
		Select      []string
		Models      []string
		Exclude     []string
		NoFailFast  bool
		FullRefresh bool
		Clean       bool
		Defer       bool
		State       string
	}

	// TestOptions configure Test.
	TestOptions struct {
		Fast       bool
		Persist    bool
		NoSeed     bool
		NoFailFast bool
		Models     []string
		Select     []string
		Defer      bool
		State      string
	}

	// SeedOptions configure Seed.
	SeedOptions struct {
		Select        []string
		Exclude       []string
		NoFullRefresh bool
		Clean         bool
	}

	// SnapshotOptions configure Snapshot.
	SnapshotOptions struct {
		Fast    bool
		Persist bool
		Select  []string
	}

	// CompileOptions configure Compile.
	CompileOptions struct {
		Fast   bool
		Models []string
	}

	// CycleOptions configure Cycle.
	CycleOptions struct {
		Count   int
		Fast    bool
		Persist bool
		NoSeed  bool
		Models  []string
		Select  []string
	}

	// PassthroughOptions configure Passthrough.
	PassthroughOptions struct {
		// Args is the dbt command and its positional arguments, e.g. ["run-operation", "foo"].
		Args        []string
		Select      []string
		Exclude     []string
		Selector    string
		FailFast    bool
		FullRefresh bool
		Seed        bool
		Cleanup     bool

		// Options is appended verbatim for flags palm-dbt doesn't model.
		Options string
	}

	// CleanupOptions configure Cleanup.
	CleanupOptions struct {
		Deps bool
	}
)

// Run builds `dbt run`, preceded by a full refresh seed unless NoSeed is set.
//
// Example:
//
//	dbt.Run(dbt.RunOptions{NoSeed: true, Models: []string{"tag:daily"}}).Render()
//	// dbt run --models tag:daily --fail-fast
func Run(opts RunOptions) Command {
	var b builder
	if !opts.NoSeed {
		b.seed(true, nil)
	}

	run := b.add("run")
	run.list("--select", opts.Select)
	run.list("--models", opts.Models)
	run.list("--exclude", opts.Exclude)
	run.flag("--fail-fast", !opts.NoFailFast)
	run.flag("--full-refresh", opts.FullRefresh)
	run.deferTo(opts.Defer, opts.State)

	if opts.Clean {
		b.dropBranchSchemas()
	}

	return b.build()
}

// Test builds `dbt test`. Unless Fast is set the project is cleaned and dependencies are
// reinstalled first, and Select narrows the seed step. Branch schemas are dropped afterwards
// unless Persist is set.
//
// Example:
//
//	dbt.Test(dbt.TestOptions{Fast: true, Persist: true}).Render()
//	// dbt seed --full-refresh && dbt test --fail-fast
func Test(opts TestOptions) Command {
	var b builder
	if !opts.Fast {
		b.prepare()
	}

	if !opts.NoSeed {
		var sel []string
		if !opts.Fast {
			sel = opts.Select
		}
		b.seed(true, sel)
	}

	test := b.add("test")
	test.list("--models", opts.Models)
	test.flag("--fail-fast", !opts.NoFailFast)
	test.deferTo(opts.Defer, opts.State)

	if !opts.Persist {
		b.dropBranchSchemas()
	}

	return b.build()
}

// Seed builds `dbt seed`, refreshing seed tables unless NoFullRefresh is set.
func Seed(opts SeedOptions) Command {
	var b builder

	seed := b.add("seed")
	seed.list("--select", opts.Select)
	seed.list("--exclude", opts.Exclude)
	seed.flag("--full-refresh", !opts.NoFullRefresh)

	if opts.Clean {
		b.dropBranchSchemas()
	}

	return b.build()
}

// Snapshot builds `dbt snapshot`.
func Snapshot(opts SnapshotOptions) Command {
	var b builder
	if !opts.Fast {
		b.prepare()
	}

	b.add("snapshot").list("--select", opts.Select)

	if !opts.Persist {
		b.dropBranchSchemas()
	}

	return b.build()
}

// Compile builds `dbt compile`.
func Compile(opts CompileOptions) Command {
	var b builder
	if !opts.Fast {
		b.prepare()
	}

	b.add("compile").list("--models", opts.Models)
	return b.build()
}

// Cycle builds Count consecutive `dbt run`/`dbt test` pairs, which is useful for verifying that
// incremental models behave on subsequent runs.
//
// Example:
//
//	cmd, _ := dbt.Cycle(dbt.CycleOptions{Count: 2, Fast: true, NoSeed: true, Persist: true})
//	cmd.Render()
//	// dbt run && dbt test && dbt run && dbt test
func Cycle(opts CycleOptions) (Command, error) {
	if opts.Count < 1 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", opts.Count)
	}

	var b builder
	if !opts.Fast {
		b.prepare()
	}

	if !opts.NoSeed {
		b.seed(true, opts.Select)
	}

	for range opts.Count {
		b.add("run").list("--models", opts.Models)
		b.add("test").list("--models", opts.Models)
	}

	if !opts.Persist {
		b.dropBranchSchemas()
	}

	return b.build(), nil
}

// Passthrough builds an arbitrary dbt command decorated with the commonly used selection flags.
//
// Example:
//
//	cmd, _ := dbt.Passthrough(dbt.PassthroughOptions{
//		Args:     []string{"ls"},
//		Selector: "nightly",
//	})
//	cmd.Render() // dbt ls --selector nightly
func Passthrough(opts PassthroughOptions) (Command, error) {
	if len(opts.Args) == 0 {
		return nil, ErrNoCommand
	}

	var b builder
	if opts.Seed {
		b.seed(true, nil)
	}

	cmd := b.add(opts.Args[0], append([]string(nil), opts.Args[1:]...)...)
	cmd.list("--select", opts.Select)
	cmd.list("--exclude", opts.Exclude)
	cmd.value("--selector", opts.Selector)
	cmd.flag("--fail-fast", opts.FailFast)
	cmd.flag("--full-refresh", opts.FullRefresh)
	if opts.Options != "" {
		cmd.Args = append(cmd.Args, opts.Options)
	}

	if opts.Cleanup {
		b.dropBranchSchemas()
	}

	return b.build(), nil
}

// Cleanup drops the branch schemas, optionally reinstalling dependencies first.
func Cleanup(opts CleanupOptions) Command {
	var b builder
	if opts.Deps {
		b.prepare()
	}

	b.dropBranchSchemas()
	return b.build()
}

// Deps installs the project's packages.
func Deps() Command {
	var b builder
	b.add("deps")
	return b.build()
}

// Docs generates the documentation site and serves it.
func Docs() Command {
	var b builder
	b.add("docs", "generate")
	b.add("docs", "serve")
	return b.build()
}
