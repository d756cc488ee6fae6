package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding plugin configuration, e.g.
// PALM_DBT_DBT_ARTIFACTS_PROD overrides dbt_artifacts_prod.
const EnvPrefix = "PALM_DBT_"

// PluginConfig is the dbt plugin configuration stored in .palm/dbt-config.yaml.
type PluginConfig struct {
	// ArtifactsLocal is where dbt artifacts (manifest.json, etc.) are read from locally. It is
	// used as the --state path when deferring.
	ArtifactsLocal string `koanf:"dbt_artifacts_local" yaml:"dbt_artifacts_local"`

	// ArtifactsProd is the location of the production artifacts.
	ArtifactsProd string `koanf:"dbt_artifacts_prod" yaml:"dbt_artifacts_prod"`

	// DbtVersion is the dbt version the project runs with.
	DbtVersion string `koanf:"dbt_version" yaml:"dbt_version,omitempty"`
}

// LoadPluginConfig loads .palm/dbt-config.yaml from the project root, layering defaults, the file
// and PALM_DBT_* environment variables (highest priority). A missing file is reported as
// ErrConfigurationMissing.
//
// Example:
//
//	cfg, err := config.LoadPluginConfig(".")
//	if errors.Is(err, config.ErrConfigurationMissing) {
//		log.Fatal("No user config found, run `palm-dbt dbt-config`")
//	}
//
//	fmt.Println(cfg.ArtifactsLocal)
func LoadPluginConfig(root string) (*PluginConfig, error) {
	path := filepath.Join(root, consts.PluginConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrConfigurationMissing, "%s not found, run `palm-dbt dbt-config`", path)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"dbt_artifacts_local": consts.DefaultArtifactsLocal,
		"dbt_version":         consts.DefaultDbtVersion,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "error reading config file %s", path)
	}

	// PALM_DBT_DBT_ARTIFACTS_LOCAL -> dbt_artifacts_local
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	var cfg PluginConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal plugin config")
	}

	return &cfg, nil
}

// StatePath returns the local artifacts path used for --state, failing when it isn't configured.
func (c *PluginConfig) StatePath() (string, error) {
	if c.ArtifactsLocal == "" {
		return "", errors.Wrap(ErrConfigurationMissing, "local artifacts path not found, run `palm-dbt dbt-config`")
	}

	return c.ArtifactsLocal, nil
}

// Write stores the configuration in .palm/dbt-config.yaml under root, creating .palm when needed.
func (c *PluginConfig) Write(root string) error {
	path := filepath.Join(root, consts.PluginConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), consts.ModeDir); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", filepath.Dir(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open config file for writing: %s", path)
	}
	defer func() { _ = f.Close() }()

	encoder := yamlv3.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(err, "failed to write plugin config")
	}

	return errors.Wrap(encoder.Close(), "failed to close yaml encoder")
}
