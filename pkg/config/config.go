package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrConfigurationMissing is returned when a required configuration file doesn't exist.
var ErrConfigurationMissing = errors.New("configuration missing")

// PalmConfig represents the palm project configuration (.palm/config.yaml).
//
// Only the keys palm-dbt needs are decoded. Everything else in the file belongs to palm itself
// and is ignored.
type PalmConfig struct {
	// ImageName is the docker image (and compose service) used to run dbt
	ImageName string `yaml:"image_name"`
}

// LoadConfig parses a palm configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data and uses a streaming YAML decoder.
// An image_name is required since every containerized command depends on it.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader("image_name: analytics\n"))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Image: %s\n", cfg.ImageName)
func LoadConfig(r io.Reader) (*PalmConfig, error) {
	var cfg PalmConfig
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal palm config")
	}

	if cfg.ImageName == "" {
		return nil, errors.New("image_name is required in palm config")
	}

	return &cfg, nil
}

// LoadConfigFile loads a palm configuration from the specified file path. A missing file is
// reported as ErrConfigurationMissing.
//
// Example:
//
//	cfg, err := config.LoadConfigFile(".palm/config.yaml")
//	if errors.Is(err, config.ErrConfigurationMissing) {
//		log.Fatal("not a palm project")
//	}
func LoadConfigFile(path string) (*PalmConfig, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrConfigurationMissing, "%s not found", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}
