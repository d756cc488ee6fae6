// Package cmd provides the CLI commands for palm-dbt.
//
// Every command is implemented as a function returning a *cli.Command (urfave/cli/v3) and is
// registered with the application through the fx Module. Commands share an *Env holding the
// project directory, the standard streams and the collaborators used to run dbt.
//
// # Available Commands
//
// dbt commands, executed inside the project's image (or on the host with --local):
//   - run, test, seed, snapshot, compile: the dbt equivalents with palm's defaults
//   - cycle: consecutive run/test pairs for checking incremental models
//   - deps: install dbt packages
//   - dbt: pass any command through to dbt
//   - cleanup: drop the branch schemas and stop the project's containers
//   - shell: an interactive shell in the project's image
//   - dbt-docs, code-docs: serve the documentation sites
//
// Project tooling:
//   - install: install the branch schema macros
//   - dbt-config: write .palm/dbt-config.yaml
//   - containerize: generate the Dockerfile and friends
//   - model new: scaffold a model
//   - model-doc: generate a model's Markdown and YAML documentation
//   - prod-artifacts: a no-op projects are expected to override
//
// # Branch Schemas
//
// dbt commands run with PDP_DEV_SCHEMA set to <user>_<branch>, so concurrent developers (and
// branches) never share a schema. Commands that create schemas drop them afterwards unless
// --persist is given.
//
// # Global Options
//
//   - --dir, -d: the dbt project directory (defaults to the current directory)
//   - --local: run dbt on the host instead of in docker (PALM_DBT_LOCAL)
//   - --verbose, -v: enable debug logging
//   - --help, -h: display command help
//   - --version: display version information
//
// # Example Usage
//
//	palm-dbt run --select tag:daily           # seed and run the daily models
//	palm-dbt test --fast --persist            # test without clean/deps, keep the schemas
//	palm-dbt cycle 3 --models my_incremental  # three run/test pairs
//	palm-dbt dbt ls --selector nightly        # pass through to dbt
//	palm-dbt model new --name users           # scaffold dim_users
//	palm-dbt model-doc models/dim/dim_users.sql
package cmd
