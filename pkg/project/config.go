package project

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/config"
	"gopkg.in/yaml.v3"
)

type (
	// StringList decodes either a single YAML string or a sequence of strings.
	StringList []string

	// DbtProject represents the parts of dbt_project.yml palm-dbt cares about.
	//
	// Path keys accept both the dbt >= 1.0 names (model-paths, seed-paths) and their legacy
	// equivalents (source-paths, data-paths). Unset paths fall back to dbt's defaults.
	DbtProject struct {
		Name              string     `yaml:"name"`
		Version           string     `yaml:"version"`
		Profile           string     `yaml:"profile"`
		ConfigVersion     int        `yaml:"config-version"`
		RequireDbtVersion StringList `yaml:"require-dbt-version"`

		ModelPaths          StringList `yaml:"model-paths"`
		SourcePaths         StringList `yaml:"source-paths"`
		MacroPaths          StringList `yaml:"macro-paths"`
		SeedPaths           StringList `yaml:"seed-paths"`
		DataPaths           StringList `yaml:"data-paths"`
		SnapshotPaths       StringList `yaml:"snapshot-paths"`
		AnalysisPaths       StringList `yaml:"analysis-paths"`
		TestPaths           StringList `yaml:"test-paths"`
		DocsPaths           StringList `yaml:"docs-paths"`
		PackagesInstallPath string     `yaml:"packages-install-path"`
		ModulesPath         string     `yaml:"modules-path"`

		Vars      map[string]any `yaml:"vars"`
		Models    map[string]any `yaml:"models"`
		Seeds     map[string]any `yaml:"seeds"`
		Snapshots map[string]any `yaml:"snapshots"`
	}
)

var versionNumber = regexp.MustCompile(`\d+(\.\d+)*`)

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}

		*l = StringList{node.Value}
		return nil
	}

	var values []string
	if err := node.Decode(&values); err != nil {
		return err
	}

	*l = values
	return nil
}

// LoadConfig parses a dbt_project.yml from the provided io.Reader and applies dbt's defaults.
//
// Example:
//
//	dbt, err := project.LoadConfig(strings.NewReader(`
//	name: analytics
//	version: "1.0.0"
//	profile: analytics
//	config-version: 2
//	`))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(dbt.ModelPaths) // [models]
func LoadConfig(r io.Reader) (*DbtProject, error) {
	var p DbtProject
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal dbt project")
	}

	if p.Name == "" {
		return nil, errors.New("dbt project is missing a name")
	}

	p.ModelPaths = firstOf(p.ModelPaths, p.SourcePaths, StringList{"models"})
	p.SeedPaths = firstOf(p.SeedPaths, p.DataPaths, StringList{"seeds"})
	p.MacroPaths = firstOf(p.MacroPaths, StringList{"macros"})
	p.SnapshotPaths = firstOf(p.SnapshotPaths, StringList{"snapshots"})
	p.AnalysisPaths = firstOf(p.AnalysisPaths, StringList{"analysis"})
	p.TestPaths = firstOf(p.TestPaths, StringList{"tests"})

	if p.PackagesInstallPath == "" {
		p.PackagesInstallPath = "dbt_packages"
	}
	if p.ModulesPath == "" {
		p.ModulesPath = "dbt_modules"
	}

	return &p, nil
}

// LoadConfigFile loads a dbt project from the specified file path. A missing file is reported as
// config.ErrConfigurationMissing.
func LoadConfigFile(path string) (*DbtProject, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(config.ErrConfigurationMissing, "%s not found, not a dbt project", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// ConfiguredDbtVersion returns the version number of the first require-dbt-version constraint
// (">=0.20.0" -> "0.20.0"), or an empty string when the project doesn't pin dbt.
func (p *DbtProject) ConfiguredDbtVersion() string {
	for _, constraint := range p.RequireDbtVersion {
		if v := versionNumber.FindString(strings.TrimSpace(constraint)); v != "" {
			return v
		}
	}

	return ""
}

func firstOf(lists ...StringList) StringList {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}

	return nil
}
