package containerize_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	. "github.com/pseudomuto/palm-dbt/pkg/containerize"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestImage(t *testing.T) {
	tests := []struct {
		name    string
		c       Containerizer
		project fstest.MapFS
	}{
		{
			name:    "pip_home",
			c:       Containerizer{ProjectName: "analytics", DbtVersion: "0.21.0"},
			project: fstest.MapFS{"dbt_project.yml": {Data: []byte("name: analytics")}},
		},
		{
			name: "poetry_project",
			c:    Containerizer{ProjectName: "warehouse", DbtVersion: "0.20.1"},
			project: fstest.MapFS{
				"pyproject.toml": {Data: []byte("[tool.poetry]\nname = \"warehouse\"\n")},
				"profiles.yml":   {Data: []byte("default: {}")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := tt.c.Image(tt.project)
			require.NoError(t, err)
			require.Len(t, image, 4)

			golden.Assert(t, string(image["Dockerfile"].Data), tt.name+".Dockerfile")
			golden.Assert(t, string(image["docker-compose.yml"].Data), tt.name+".docker-compose.yml")
			golden.Assert(t, string(image["scripts/entrypoint.sh"].Data), "entrypoint.sh")
			golden.Assert(t, string(image[".dockerignore"].Data), "dockerignore")
		})
	}
}

func TestImageErrors(t *testing.T) {
	t.Run("unsupported version", func(t *testing.T) {
		c := Containerizer{ProjectName: "p", DbtVersion: "1.0.0"}

		image, err := c.Image(fstest.MapFS{})
		require.Nil(t, image)

		var unsupported *UnsupportedVersionError
		require.ErrorAs(t, err, &unsupported)
		require.Equal(t, "1.0.0", unsupported.Version)
	})

	t.Run("missing project name", func(t *testing.T) {
		c := Containerizer{DbtVersion: "0.21.0"}

		_, err := c.Image(fstest.MapFS{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "project name is required")
	})
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM custom"), 0o644))

	c := &Containerizer{ProjectName: "analytics", DbtVersion: "0.21.0", PackageManager: Pipenv}

	created, err := c.Run(dir)
	require.NoError(t, err)
	require.Equal(t, []string{".dockerignore", "docker-compose.yml", "scripts/entrypoint.sh"}, created)

	// existing files are preserved
	data, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	require.Equal(t, "FROM custom", string(data))

	info, err := os.Stat(filepath.Join(dir, "scripts", "entrypoint.sh"))
	require.NoError(t, err)
	require.NotZero(t, info.Mode().Perm()&0o100)

	// running again is a no-op
	created, err = c.Run(dir)
	require.NoError(t, err)
	require.Empty(t, created)
}

func TestRunUnsupportedVersionWritesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := (&Containerizer{ProjectName: "p", DbtVersion: "0.18.2"}).Run(dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
