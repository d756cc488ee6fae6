package project

import (
	"bytes"
	_ "embed"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
	"github.com/pseudomuto/palm-dbt/pkg/modeldoc"
	"github.com/pseudomuto/palm-dbt/pkg/parser"
)

const (
	// DefaultModelType is used when no model type is given.
	DefaultModelType = "dim"

	defaultNotes       = "## Business Notes\n\n## Developer Notes"
	defaultGrain       = "TODO: Add grain"
	defaultRefFileDesc = "TBD"
)

var (
	// ModelTypes are the supported model types, in documentation order.
	ModelTypes = []string{"tmp", "staging", "intermediate", "dim", "fact"}

	// ErrInvalidModelType is returned for model types outside of ModelTypes.
	ErrInvalidModelType = errors.New("invalid model type")

	// ErrRefFileNotUpdated is returned when the reference SQL still holds the placeholder.
	ErrRefFileNotUpdated = errors.New("ref file not updated, please add your source SQL and re-run the command")

	//go:embed embed/model.sql
	defaultModelSQL []byte

	//go:embed embed/ref_files/ref_file.sql
	defaultRefFile []byte

	//go:embed embed/ref_files/ref_file_readme.md
	defaultRefReadme []byte

	refFiles = fstest.MapFS{
		"ref_file.sql":       {Data: defaultRefFile},
		"ref_file_readme.md": {Data: defaultRefReadme},
	}

	placeholderPattern = regexp.MustCompile(`^<.*>$`)
	tableRefPattern    = regexp.MustCompile(`(?i)\b(from|join)\s+(?:[a-z0-9_]+\.)+([a-z0-9_]+)`)
	columnNotePattern  = regexp.MustCompile(`(?m)([A-Za-z_][A-Za-z0-9_]*)\s*,?\s*--\s*(.*?)\s*$`)
	modelNotesPattern  = regexp.MustCompile(`(?s)^\s*/\*(.*?)\*/`)
)

type (
	// ModelOptions configure NewModel.
	ModelOptions struct {
		// Name of the model without its type prefix.
		Name string

		// Type is one of ModelTypes. Defaults to DefaultModelType.
		Type string

		// UseRefFile builds the model from the reference SQL in .palm/model_template/ref_files.
		UseRefFile bool
	}

	// ModelResult describes the outcome of NewModel.
	ModelResult struct {
		// Model is the (prefixed) model name.
		Model string

		// Created lists the files written, relative to the project root.
		Created []string

		// RefFilesCreated is set when the reference files were missing and have been created
		// instead of the model. The user needs to fill them in and run again.
		RefFilesCreated bool
	}
)

// ModelName prefixes name according to the model type (dim_, fact_ and tmp_).
func ModelName(name, modelType string) string {
	switch modelType {
	case "dim", "fact", "tmp":
		return modelType + "_" + name
	default:
		return name
	}
}

// NewModel scaffolds the SQL, YAML and Markdown files for a new model. Existing files are never
// overwritten.
//
// Example:
//
//	res, err := proj.NewModel(project.ModelOptions{Name: "users", Type: "dim"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(res.Model)   // dim_users
//	fmt.Println(res.Created) // [models/dim/dim_users/dim_users.sql ...]
func (p *Project) NewModel(opts ModelOptions) (*ModelResult, error) {
	if opts.Type == "" {
		opts.Type = DefaultModelType
	}

	if !slices.Contains(ModelTypes, opts.Type) {
		return nil, errors.Wrapf(ErrInvalidModelType, "%q (valid model types are: %s)", opts.Type, strings.Join(ModelTypes, ", "))
	}

	if strings.TrimSpace(opts.Name) == "" {
		return nil, errors.New("model name is required")
	}

	res := &ModelResult{Model: ModelName(opts.Name, opts.Type)}

	var (
		sql     = defaultModelSQL
		columns = []modeldoc.Column{{
			Name:        "_sk",
			Description: "The unique id for " + res.Model,
			Tests:       []string{"not_null"},
		}}
		notes = defaultNotes
	)

	if opts.UseRefFile {
		ref, created, err := p.refFile()
		if err != nil {
			return nil, err
		}

		if created {
			res.RefFilesCreated = true
			return res, nil
		}

		sql = []byte(ConvertRefSQL(ref))
		if columns, err = RefColumns(ref); err != nil {
			return nil, err
		}
		notes = RefNotes(ref)
	}

	image, err := p.modelImage(res.Model, opts.Type, sql, columns, notes)
	if err != nil {
		return nil, err
	}

	if res.Created, err = writeMissing(p.root, image); err != nil {
		return nil, err
	}

	return res, nil
}

func (p *Project) modelImage(model, modelType string, sql []byte, columns []modeldoc.Column, notes string) (fstest.MapFS, error) {
	schema := &modeldoc.Schema{
		Version: 2,
		Models: []modeldoc.Model{{
			Name:        model,
			Description: modeldoc.DocRef(model),
			Columns:     columns,
		}},
	}

	var yml bytes.Buffer
	if err := schema.Encode(&yml); err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := modeldoc.RenderMarkdown(&md, modeldoc.MarkdownInput{
		Model:       model,
		Grain:       defaultGrain,
		Description: notes,
	}); err != nil {
		return nil, err
	}

	modelDir := path.Join(p.ModelsDir(), modelType, model)

	image := make(fstest.MapFS, 3)
	image[path.Join(modelDir, model+".sql")] = &fstest.MapFile{Data: sql}
	image[path.Join(modelDir, model+".yml")] = &fstest.MapFile{Data: yml.Bytes()}
	image[path.Join(p.ModelDocsDir(), modelType, model+".md")] = &fstest.MapFile{Data: md.Bytes()}

	return image, nil
}

// refFile returns the reference SQL, creating the reference files when they don't exist.
func (p *Project) refFile() (string, bool, error) {
	refPath := filepath.Join(p.root, consts.RefFile)

	data, err := os.ReadFile(refPath)
	if os.IsNotExist(err) {
		if _, err := writeMissing(filepath.Dir(refPath), refFiles); err != nil {
			return "", false, err
		}
		return "", true, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read %s", refPath)
	}

	ref := strings.TrimSpace(string(data))
	if ref == "" || placeholderPattern.MatchString(ref) {
		return "", false, ErrRefFileNotUpdated
	}

	return ref, false, nil
}

// ConvertRefSQL turns plain warehouse SQL into dbt SQL: identifier quotes are dropped and fully
// qualified tables in FROM/JOIN clauses become refs (join raw.public.users -> JOIN {{ ref('users') }}).
func ConvertRefSQL(sql string) string {
	sql = strings.ReplaceAll(sql, `"`, "")
	return tableRefPattern.ReplaceAllStringFunc(sql, func(match string) string {
		groups := tableRefPattern.FindStringSubmatch(match)
		return strings.ToUpper(groups[1]) + " {{ ref('" + strings.ToLower(groups[2]) + "') }}"
	})
}

// RefColumns returns the documented columns of the reference SQL. A trailing `-- comment` on the
// line selecting a column becomes its description.
func RefColumns(sql string) ([]modeldoc.Column, error) {
	names, err := parser.ExtractColumns(strings.ReplaceAll(sql, `"`, ""))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read columns from ref file")
	}

	notes := make(map[string]string)
	for _, m := range columnNotePattern.FindAllStringSubmatch(sql, -1) {
		notes[strings.ToLower(m[1])] = m[2]
	}

	columns := make([]modeldoc.Column, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(name)

		desc := notes[name]
		if desc == "" {
			desc = defaultRefFileDesc
		}

		columns = append(columns, modeldoc.Column{Name: name, Description: desc})
	}

	return columns, nil
}

// RefNotes returns the leading block comment of the reference SQL, used as the model's notes.
func RefNotes(sql string) string {
	m := modelNotesPattern.FindStringSubmatch(sql)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return defaultNotes
	}

	return strings.TrimSpace(m[1])
}
