package modeldoc

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/parser"
)

// ErrUnresolvedDestination is returned when no documentation type could be determined for a
// model, even after asking the Resolver.
var ErrUnresolvedDestination = errors.New("could not determine model type")

type (
	// Resolver picks a documentation type for destinations that are not Unambiguous. Returning
	// an empty string aborts generation with ErrUnresolvedDestination.
	Resolver func(Destination) (string, error)

	// Generator writes the Markdown and YAML documentation for dbt models.
	Generator struct {
		// Root is the dbt project root. Relative paths are resolved against it.
		Root string

		// ModelDocsDir is the directory (relative to Root) holding one sub directory per
		// documentation type.
		ModelDocsDir string

		// Index reports existing column documentation snippets.
		Index Lookup

		// Confirm is asked before overwriting existing files.
		Confirm Confirmer

		// Resolve is consulted for ambiguous or unmatched destinations.
		Resolve Resolver
	}

	// Request describes the model to document.
	Request struct {
		// ModelPath is the path to the model's SQL file, relative to the project root.
		ModelPath   string
		Grain       string
		Description string

		// Elaborate optionally supplies descriptions for undocumented columns.
		Elaborate func(column string) string
	}

	// Result describes the outcome of Generate.
	Result struct {
		Model           string
		Columns         []string
		MarkdownPath    string
		MarkdownWritten bool
		SchemaPath      string
		SchemaWritten   bool
	}
)

// Generate extracts the model's columns and writes its Markdown and YAML documentation. Nothing
// is written when the model has no extractable columns.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	model := strings.TrimSuffix(filepath.Base(req.ModelPath), filepath.Ext(req.ModelPath))
	res := &Result{Model: model}

	sql, err := os.ReadFile(g.path(req.ModelPath))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model %s", req.ModelPath)
	}

	res.Columns, err = parser.ExtractColumns(string(sql))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract columns from %s", req.ModelPath)
	}

	slog.Debug("extracted model columns", "model", model, "columns", res.Columns)

	docType, err := g.docType(req.ModelPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.MarkdownPath = filepath.Join(g.ModelDocsDir, docType, model+".md")
	res.MarkdownWritten, err = WriteMarkdown(g.path(res.MarkdownPath), MarkdownInput{
		Model:       model,
		Grain:       req.Grain,
		Description: req.Description,
	}, g.Confirm)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schema := BuildSchema(model, res.Columns, g.Index, SchemaOptions{Elaborate: req.Elaborate})
	res.SchemaPath = filepath.Join(filepath.Dir(req.ModelPath), model+".yml")
	res.SchemaWritten, err = WriteSchema(g.path(res.SchemaPath), schema, g.Confirm)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// DocTypes lists the documentation type directories under ModelDocsDir. The second return value
// reports whether ModelDocsDir exists.
func (g *Generator) DocTypes() ([]string, bool, error) {
	entries, err := os.ReadDir(g.path(g.ModelDocsDir))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read %s", g.ModelDocsDir)
	}

	var types []string
	for _, e := range entries {
		if e.IsDir() {
			types = append(types, e.Name())
		}
	}

	return types, true, nil
}

func (g *Generator) docType(modelPath string) (string, error) {
	types, exists, err := g.DocTypes()
	if err != nil {
		return "", err
	}

	dest := ClassifyDestination(modelPath, types, exists)
	if dest.Kind == Unambiguous {
		return dest.Type, nil
	}

	slog.Debug("model documentation type not resolved", "model", modelPath, "kind", dest.Kind.String())
	if g.Resolve == nil {
		return "", errors.Wrapf(ErrUnresolvedDestination, "%s (%s)", modelPath, dest.Kind)
	}

	docType, err := g.Resolve(dest)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve model type")
	}

	docType = strings.TrimSpace(docType)
	if docType == "" || docType != filepath.Base(docType) {
		return "", errors.Wrapf(ErrUnresolvedDestination, "%s (%s)", modelPath, dest.Kind)
	}

	return docType, nil
}

func (g *Generator) path(p string) string {
	if filepath.IsAbs(p) || g.Root == "" {
		return p
	}

	return filepath.Join(g.Root, p)
}
