package containerize

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing/fstest"
	"text/template"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
)

// DefaultModulesPath is where dbt < 1.0 installs packages.
const DefaultModulesPath = "dbt_modules"

var (
	//go:embed templates/*.tmpl
	templateFS embed.FS

	templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

	// outputs maps generated paths to their template
	outputs = map[string]string{
		"Dockerfile":            "Dockerfile.tmpl",
		"docker-compose.yml":    "docker-compose.yml.tmpl",
		"scripts/entrypoint.sh": "entrypoint.sh.tmpl",
		".dockerignore":         "dockerignore.tmpl",
	}
)

type (
	// Containerizer generates the Docker files for a dbt project.
	Containerizer struct {
		// ProjectName names the compose service and image (palm's image_name).
		ProjectName string

		// DbtVersion is the dbt release installed in the image.
		DbtVersion string

		// PackageManager overrides detection when set.
		PackageManager PackageManager

		// ModulesPath is the dbt packages directory. Defaults to DefaultModulesPath.
		ModulesPath string
	}

	templateData struct {
		ProjectName    string
		DbtVersion     string
		PackageManager PackageManager
		ProjectProfile bool
		ModulesPath    string
	}
)

// Image renders every generated file for the project rooted at fsys without touching the disk.
func (c *Containerizer) Image(fsys fs.FS) (fstest.MapFS, error) {
	if err := ValidateDbtVersion(c.DbtVersion); err != nil {
		return nil, err
	}

	if c.ProjectName == "" {
		return nil, errors.New("project name is required")
	}

	data := templateData{
		ProjectName:    c.ProjectName,
		DbtVersion:     c.DbtVersion,
		PackageManager: c.PackageManager,
		ProjectProfile: ProfileStrategy(fsys).Kind == ProfileProject,
		ModulesPath:    c.ModulesPath,
	}

	if data.PackageManager == "" {
		data.PackageManager = DetectPackageManager(fsys)
	}

	if data.ModulesPath == "" {
		data.ModulesPath = DefaultModulesPath
	}

	image := make(fstest.MapFS, len(outputs))
	for path, name := range outputs {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", path)
		}

		mode := consts.ModeFile
		if filepath.Ext(path) == ".sh" {
			mode = consts.ModeExec
		}

		image[path] = &fstest.MapFile{Data: buf.Bytes(), Mode: mode}
	}

	return image, nil
}

// Run validates the configuration and writes the generated files into dir, skipping any that
// already exist. It returns the (sorted) paths that were created.
func (c *Containerizer) Run(dir string) ([]string, error) {
	image, err := c.Image(os.DirFS(dir))
	if err != nil {
		return nil, err
	}

	var created []string
	for path, entry := range image {
		fullPath := filepath.Join(dir, path)

		if _, err := os.Stat(fullPath); err == nil {
			slog.Debug("skipping existing file", "path", fullPath)
			continue
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, consts.ModeDir); err != nil {
			return nil, errors.Wrapf(err, "failed to create parent directory %s", parentDir)
		}

		if err := os.WriteFile(fullPath, entry.Data, entry.Mode); err != nil {
			return nil, errors.Wrapf(err, "failed to write file %s", fullPath)
		}

		created = append(created, path)
	}

	sort.Strings(created)
	return created, nil
}
