package containerize

import (
	"bytes"
	"io/fs"
)

// PackageManager is the tool used to install a project's Python dependencies.
type PackageManager string

const (
	Poetry PackageManager = "poetry"
	Pipenv PackageManager = "pipenv"
	Pip    PackageManager = "pip"
)

// DetectPackageManager inspects the project root. A poetry.lock, or a pyproject.toml with a
// [tool.poetry] table, selects poetry; a Pipfile selects pipenv; everything else uses pip.
func DetectPackageManager(fsys fs.FS) PackageManager {
	if exists(fsys, "poetry.lock") {
		return Poetry
	}

	if data, err := fs.ReadFile(fsys, "pyproject.toml"); err == nil && bytes.Contains(data, []byte("[tool.poetry]")) {
		return Poetry
	}

	if exists(fsys, "Pipfile") {
		return Pipenv
	}

	return Pip
}

func exists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
