package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/palm-dbt/pkg/config"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"github.com/stretchr/testify/require"
)

func writePluginConfig(t *testing.T, content string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".palm"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".palm", "dbt-config.yaml"), []byte(content), 0o644))
	return root
}

func TestLoadPluginConfig(t *testing.T) {
	t.Run("file values", func(t *testing.T) {
		cfg, err := LoadPluginConfig(writePluginConfig(t, testPluginYAML))
		require.NoError(t, err)
		require.Equal(t, &PluginConfig{
			ArtifactsLocal: "target/prod/",
			ArtifactsProd:  "s3://artifacts/prod/",
			DbtVersion:     "0.20.1",
		}, cfg)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadPluginConfig(writePluginConfig(t, "dbt_artifacts_prod: prod/\n"))
		require.NoError(t, err)
		require.Equal(t, consts.DefaultArtifactsLocal, cfg.ArtifactsLocal)
		require.Equal(t, consts.DefaultDbtVersion, cfg.DbtVersion)
		require.Equal(t, "prod/", cfg.ArtifactsProd)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("PALM_DBT_DBT_ARTIFACTS_PROD", "gs://override/")
		t.Setenv("PALM_DBT_DBT_VERSION", "0.19.2")

		cfg, err := LoadPluginConfig(writePluginConfig(t, testPluginYAML))
		require.NoError(t, err)
		require.Equal(t, "gs://override/", cfg.ArtifactsProd)
		require.Equal(t, "0.19.2", cfg.DbtVersion)
		require.Equal(t, "target/prod/", cfg.ArtifactsLocal)
	})

	t.Run("missing", func(t *testing.T) {
		cfg, err := LoadPluginConfig(t.TempDir())
		require.Nil(t, cfg)
		require.True(t, errors.Is(err, ErrConfigurationMissing))
		require.Contains(t, err.Error(), "palm-dbt dbt-config")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := LoadPluginConfig(writePluginConfig(t, "invalid: yaml: ["))
		require.Nil(t, cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "error reading config file")
	})
}

func TestPluginConfigWrite(t *testing.T) {
	root := t.TempDir()
	cfg := &PluginConfig{ArtifactsLocal: "target/", ArtifactsProd: "s3://bucket/"}
	require.NoError(t, cfg.Write(root))

	data, err := os.ReadFile(filepath.Join(root, ".palm", "dbt-config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "dbt_artifacts_local: target/\ndbt_artifacts_prod: s3://bucket/\n", string(data))

	loaded, err := LoadPluginConfig(root)
	require.NoError(t, err)
	require.Equal(t, "s3://bucket/", loaded.ArtifactsProd)
	require.Equal(t, consts.DefaultDbtVersion, loaded.DbtVersion)
}

func TestPluginConfigStatePath(t *testing.T) {
	path, err := (&PluginConfig{ArtifactsLocal: "target/"}).StatePath()
	require.NoError(t, err)
	require.Equal(t, "target/", path)

	_, err = (&PluginConfig{}).StatePath()
	require.True(t, errors.Is(err, ErrConfigurationMissing))
}
