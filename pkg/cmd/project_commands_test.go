package cmd

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/cmd/testutil"
	"github.com/pseudomuto/palm-dbt/pkg/config"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"github.com/pseudomuto/palm-dbt/pkg/containerize"
	"github.com/pseudomuto/palm-dbt/pkg/project"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/ref_file.sql
var testRefFile string

func TestDbtConfig(t *testing.T) {
	t.Run("with prod artifacts", func(t *testing.T) {
		f := newFixture(t, "y\ns3://artifacts/prod\n\n")

		require.NoError(t, testutil.RunCommand(t, dbtConfig(f.env), nil))

		cfg, err := config.LoadPluginConfig(f.dir)
		require.NoError(t, err)
		require.Equal(t, "s3://artifacts/prod", cfg.ArtifactsProd)
		require.Equal(t, consts.DefaultArtifactsLocal, cfg.ArtifactsLocal)
		require.Contains(t, f.out.String(), "Wrote "+consts.PluginConfigFile)
	})

	t.Run("without prod artifacts", func(t *testing.T) {
		f := newFixture(t, "n\nlocal/target\n")

		require.NoError(t, testutil.RunCommand(t, dbtConfig(f.env), nil))

		cfg, err := config.LoadPluginConfig(f.dir)
		require.NoError(t, err)
		require.Empty(t, cfg.ArtifactsProd)
		require.Equal(t, "local/target", cfg.ArtifactsLocal)
	})
}

func TestInstall(t *testing.T) {
	f := newFixture(t, "")

	require.NoError(t, testutil.RunCommand(t, install(f.env), nil))
	require.Contains(t, f.out.String(), "Palm dbt macros installed!")
	require.FileExists(t, filepath.Join(f.dir, "macros", "drop_branch_schemas.sql"))
	require.FileExists(t, filepath.Join(f.dir, "macros", "generate_schema_name.sql"))

	require.NoError(t, testutil.RunCommand(t, install(f.env), nil))
	require.Contains(t, f.out.String(), "already installed palm-dbt macros")
}

func TestInstallRequiresProject(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.Remove(filepath.Join(f.dir, consts.DbtProjectFile)))

	err := testutil.RunCommand(t, install(f.env), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a dbt project")
}

func TestContainerize(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		f := newFixture(t, "")

		require.NoError(t, testutil.RunCommand(t, containerizeCmd(f.env), []string{"--version", "0.20.1"}))
		require.Contains(t, f.read(t, "Dockerfile"), "dbt==0.20.1")
		require.FileExists(t, filepath.Join(f.dir, "docker-compose.yml"))
		require.FileExists(t, filepath.Join(f.dir, "scripts", "entrypoint.sh"))
		require.Contains(t, f.out.String(), "Containerized analytics")
	})

	t.Run("project version", func(t *testing.T) {
		f := newFixture(t, "")
		f.write(t, consts.DbtProjectFile, "name: analytics\nrequire-dbt-version: \">=0.19.2\"\n")

		require.NoError(t, testutil.RunCommand(t, containerizeCmd(f.env), nil))
		require.Contains(t, f.read(t, "Dockerfile"), "dbt==0.19.2")
	})

	t.Run("prompts for the version", func(t *testing.T) {
		f := newFixture(t, "\n")

		require.NoError(t, testutil.RunCommand(t, containerizeCmd(f.env), nil))
		require.Contains(t, f.out.String(), "Enter dbt version to use ["+consts.DefaultDbtVersion+"]")
		require.Contains(t, f.read(t, "Dockerfile"), "dbt=="+consts.DefaultDbtVersion)
	})

	t.Run("existing files are kept", func(t *testing.T) {
		f := newFixture(t, "")
		f.write(t, "Dockerfile", "FROM custom\n")

		require.NoError(t, testutil.RunCommand(t, containerizeCmd(f.env), []string{"--version", "0.21.0"}))
		require.Equal(t, "FROM custom\n", f.read(t, "Dockerfile"))
	})

	t.Run("unsupported version", func(t *testing.T) {
		f := newFixture(t, "")

		err := testutil.RunCommand(t, containerizeCmd(f.env), []string{"--version", "1.5.0"})

		var unsupported *containerize.UnsupportedVersionError
		require.True(t, errors.As(err, &unsupported))
		require.NoFileExists(t, filepath.Join(f.dir, "Dockerfile"))
	})
}

func TestModelNew(t *testing.T) {
	t.Run("scaffolds a model", func(t *testing.T) {
		f := newFixture(t, "")

		require.NoError(t, testutil.RunCommand(t, model(f.env), []string{"new", "--name", "users"}))
		require.FileExists(t, filepath.Join(f.dir, "models/dim/dim_users/dim_users.sql"))
		require.FileExists(t, filepath.Join(f.dir, "models/dim/dim_users/dim_users.yml"))
		require.FileExists(t, filepath.Join(f.dir, "models/documentation/models/dim/dim_users.md"))
		require.Contains(t, f.out.String(), "Generated dim_users")
		require.Empty(t, f.runner.Calls)
	})

	t.Run("invalid model type", func(t *testing.T) {
		f := newFixture(t, "")

		err := testutil.RunCommand(t, model(f.env), []string{"new", "--name", "users", "--model-type", "view"})
		require.ErrorIs(t, err, project.ErrInvalidModelType)
	})

	t.Run("from the ref file", func(t *testing.T) {
		f := newFixture(t, "")
		args := []string{"new", "--name", "orders", "--model-type", "fact", "--use-ref-file"}

		require.NoError(t, testutil.RunCommand(t, model(f.env), args))
		require.FileExists(t, filepath.Join(f.dir, consts.RefFile))
		require.Contains(t, f.out.String(), "Add your source SQL")
		require.Empty(t, f.runner.Calls)

		err := testutil.RunCommand(t, model(f.env), args)
		require.ErrorIs(t, err, project.ErrRefFileNotUpdated)

		f.write(t, consts.RefFile, testRefFile)
		require.NoError(t, testutil.RunCommand(t, model(f.env), args))
		require.Contains(t, f.read(t, "models/fact/fact_orders/fact_orders.sql"), "{{ ref('orders') }}")
		require.Equal(t, []string{"dbt run --models @fact_orders --fail-fast"}, f.runner.Commands())
	})

	t.Run("no run", func(t *testing.T) {
		f := newFixture(t, "")
		f.write(t, consts.RefFile, testRefFile)

		args := []string{"new", "--name", "orders", "--model-type", "fact", "--use-ref-file", "--no-run"}
		require.NoError(t, testutil.RunCommand(t, model(f.env), args))
		require.FileExists(t, filepath.Join(f.dir, "models/fact/fact_orders/fact_orders.yml"))
		require.Empty(t, f.runner.Calls)
	})
}

func TestModelDoc(t *testing.T) {
	setup := func(t *testing.T, input string) *fixture {
		t.Helper()

		f := newFixture(t, input)
		f.write(t, "models/dim/dim_users.sql", "select id, full_name as name from {{ ref('users') }}\n")
		f.write(t, "models/other/users_joined.sql", "select id from {{ ref('users') }}\n")
		f.write(t, "models/documentation/columns/id.md", "{% docs id %}The id{% enddocs %}\n")
		require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "models/documentation/models/dim"), consts.ModeDir))
		require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "models/documentation/models/fact"), consts.ModeDir))
		return f
	}

	t.Run("writes the docs", func(t *testing.T) {
		f := setup(t, "Users of the app\n")

		args := []string{"--grain", "one row per user", "models/dim/dim_users.sql"}
		require.NoError(t, testutil.RunCommand(t, modelDoc(f.env), args))

		md := f.read(t, "models/documentation/models/dim/dim_users.md")
		require.Contains(t, md, "one row per user")
		require.Contains(t, md, "Users of the app")

		yml := f.read(t, "models/dim/dim_users.yml")
		require.Contains(t, yml, `{{ doc("id") }}`)
		require.Contains(t, yml, "name: name")
	})

	t.Run("asks for the doc type", func(t *testing.T) {
		f := setup(t, "2\n")

		args := []string{"--grain", "g", "--description", "d", "models/other/users_joined.sql"}
		require.NoError(t, testutil.RunCommand(t, modelDoc(f.env), args))
		require.FileExists(t, filepath.Join(f.dir, "models/documentation/models/fact/users_joined.md"))
		require.FileExists(t, filepath.Join(f.dir, "models/other/users_joined.yml"))
	})

	t.Run("unresolved doc type", func(t *testing.T) {
		f := setup(t, "")

		args := []string{"--grain", "g", "--description", "d", "models/other/users_joined.sql"}
		err := testutil.RunCommand(t, modelDoc(f.env), args)
		require.Error(t, err)
	})

	t.Run("requires a path", func(t *testing.T) {
		f := setup(t, "")

		err := testutil.RunCommand(t, modelDoc(f.env), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "exactly one model path")
	})
}
