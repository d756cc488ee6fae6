package project_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/config"
	. "github.com/pseudomuto/palm-dbt/pkg/project"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/dbt_project.yml
var testDbtProjectYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p, err := LoadConfig(strings.NewReader(testDbtProjectYAML))
		require.NoError(t, err)

		require.Equal(t, "analytics", p.Name)
		require.Equal(t, "1.0.0", p.Version)
		require.Equal(t, "analytics", p.Profile)
		require.Equal(t, 2, p.ConfigVersion)
		require.Equal(t, StringList{">=0.20.0", "<0.22.0"}, p.RequireDbtVersion)
		require.Equal(t, StringList{"models"}, p.ModelPaths)
		require.Equal(t, StringList{"data"}, p.SeedPaths)
		require.Equal(t, StringList{"docs"}, p.DocsPaths)
		require.Equal(t, "2020-01-01", p.Vars["start_date"])
		require.Contains(t, p.Models, "analytics")
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := LoadConfig(strings.NewReader("name: minimal\nrequire-dbt-version: '>=0.19.0'\nmodel-paths:\n"))
		require.NoError(t, err)

		require.Equal(t, StringList{"models"}, p.ModelPaths)
		require.Equal(t, StringList{"seeds"}, p.SeedPaths)
		require.Equal(t, StringList{"macros"}, p.MacroPaths)
		require.Equal(t, StringList{"snapshots"}, p.SnapshotPaths)
		require.Equal(t, StringList{"analysis"}, p.AnalysisPaths)
		require.Equal(t, StringList{"tests"}, p.TestPaths)
		require.Empty(t, p.DocsPaths)
		require.Equal(t, "dbt_packages", p.PackagesInstallPath)
		require.Equal(t, "dbt_modules", p.ModulesPath)
		require.Equal(t, StringList{">=0.19.0"}, p.RequireDbtVersion)
	})

	t.Run("error", func(t *testing.T) {
		p, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, p)
		require.Contains(t, err.Error(), "failed to unmarshal dbt project")

		p, err = LoadConfig(strings.NewReader("version: 1"))
		require.Error(t, err)
		require.Nil(t, p)
		require.Contains(t, err.Error(), "missing a name")
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dbt_project.yml")
		require.NoError(t, os.WriteFile(path, []byte(testDbtProjectYAML), 0o644))

		p, err := LoadConfigFile(path)
		require.NoError(t, err)
		require.Equal(t, "analytics", p.Name)
	})

	t.Run("missing", func(t *testing.T) {
		p, err := LoadConfigFile(filepath.Join(t.TempDir(), "dbt_project.yml"))
		require.Nil(t, p)
		require.True(t, errors.Is(err, config.ErrConfigurationMissing))
		require.Contains(t, err.Error(), "not a dbt project")
	})
}

func TestConfiguredDbtVersion(t *testing.T) {
	tests := []struct {
		name        string
		constraints StringList
		want        string
	}{
		{name: "none"},
		{name: "range", constraints: StringList{">=0.20.0", "<0.22.0"}, want: "0.20.0"},
		{name: "exact", constraints: StringList{"0.21.1"}, want: "0.21.1"},
		{name: "skips junk", constraints: StringList{"latest", "~0.19"}, want: "0.19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &DbtProject{RequireDbtVersion: tt.constraints}
			require.Equal(t, tt.want, p.ConfiguredDbtVersion())
		})
	}
}
