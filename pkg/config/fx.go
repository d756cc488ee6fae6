package config

import (
	"path/filepath"

	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"go.uber.org/fx"
)

// Loader reads the palm and plugin configuration for a project. Commands receive it through fx
// and load lazily, once the project directory flag has been parsed.
type Loader struct{}

// Palm loads .palm/config.yaml from root.
func (Loader) Palm(root string) (*PalmConfig, error) {
	return LoadConfigFile(filepath.Join(root, consts.PalmConfigFile))
}

// Plugin loads .palm/dbt-config.yaml from root.
func (Loader) Plugin(root string) (*PluginConfig, error) {
	return LoadPluginConfig(root)
}

var Module = fx.Module("config", fx.Provide(
	func() *Loader { return &Loader{} },
))
