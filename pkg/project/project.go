package project

import (
	_ "embed"
	"os"
	"path"
	"path/filepath"
	"slices"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
)

var (
	//go:embed embed/macros/drop_branch_schemas.sql
	dropBranchSchemasSQL []byte

	//go:embed embed/macros/generate_schema_name.sql
	generateSchemaNameSQL []byte

	// macros are installed into the project's first macro path
	macros = fstest.MapFS{
		"drop_branch_schemas.sql":  {Data: dropBranchSchemasSQL, Mode: consts.ModeFile},
		"generate_schema_name.sql": {Data: generateSchemaNameSQL, Mode: consts.ModeFile},
	}
)

// Project is a dbt project on disk.
type Project struct {
	root string
	dbt  *DbtProject
}

// New creates a Project rooted at path. Nothing is read until Load is called.
//
// Example:
//
//	proj := project.New("/path/to/dbt/project")
//	if err := proj.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	installed, err := proj.InstallMacros()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(installed)
func New(path string) *Project {
	return &Project{root: path}
}

// Load reads dbt_project.yml from the project root.
func (p *Project) Load() error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	dbt, err := LoadConfigFile(filepath.Join(p.root, consts.DbtProjectFile))
	if err != nil {
		return err
	}

	p.dbt = dbt
	return nil
}

// Root returns the project root directory.
func (p *Project) Root() string {
	return p.root
}

// Dbt returns the loaded dbt project. It panics when Load hasn't succeeded.
func (p *Project) Dbt() *DbtProject {
	if p.dbt == nil {
		panic("project not loaded - call Load() first")
	}

	return p.dbt
}

// ModelsDir returns the first configured model path (relative to the root).
func (p *Project) ModelsDir() string {
	return p.Dbt().ModelPaths[0]
}

// ModelDocsDir returns the directory (relative to the root) holding one sub directory of model
// documentation per model type.
func (p *Project) ModelDocsDir() string {
	return path.Join(p.ModelsDir(), "documentation", "models")
}

// ColumnDocDirs returns every directory (relative to the root) that may hold column
// documentation snippets: documentation/columns inside each model path, followed by each
// docs-path and its columns sub directory.
func (p *Project) ColumnDocDirs() []string {
	var dirs []string
	for _, m := range p.Dbt().ModelPaths {
		dirs = append(dirs, path.Join(m, "documentation", "columns"))
	}

	for _, d := range p.Dbt().DocsPaths {
		dirs = append(dirs, path.Clean(d), path.Join(d, "columns"))
	}

	return slices.Compact(dirs)
}

// InstallMacros copies the branch schema macros into the project's first macro path. Nothing is
// written when any of them is already present, and false is returned.
func (p *Project) InstallMacros() (bool, error) {
	dir := filepath.Join(p.root, p.Dbt().MacroPaths[0])

	for name := range macros {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return false, nil
		} else if !os.IsNotExist(err) {
			return false, errors.Wrapf(err, "failed to stat %s", name)
		}
	}

	if _, err := writeMissing(dir, macros); err != nil {
		return false, err
	}

	return true, nil
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}

// writeMissing writes every file of image that doesn't exist below dir yet and returns the
// created (image relative) paths.
func writeMissing(dir string, image fstest.MapFS) ([]string, error) {
	var created []string

	for name, entry := range image {
		fullPath := filepath.Join(dir, name)

		// Check if the entry already exists
		if _, err := os.Stat(fullPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, consts.ModeDir); err != nil {
			return nil, errors.Wrapf(err, "failed to create parent directory %s", parentDir)
		}

		mode := entry.Mode
		if mode == 0 {
			mode = consts.ModeFile
		}

		if err := os.WriteFile(fullPath, entry.Data, mode); err != nil {
			return nil, errors.Wrapf(err, "failed to write file %s", fullPath)
		}

		created = append(created, name)
	}

	slices.Sort(created)
	return created, nil
}
