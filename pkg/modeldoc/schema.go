package modeldoc

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PlaceholderDescription is used for columns without an existing documentation snippet.
const PlaceholderDescription = "TODO: Add description"

type (
	// Lookup reports whether a documentation snippet exists for a name. *docindex.Index
	// satisfies it.
	Lookup interface {
		Exists(name string) bool
	}

	// SchemaOptions customize BuildSchema.
	SchemaOptions struct {
		// Elaborate, when set, is asked for a description of every column without a
		// documentation snippet. Returning an empty string keeps the placeholder.
		Elaborate func(column string) string
	}

	// Column is a documented model column.
	Column struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Tests       []string `yaml:"tests,omitempty"`
	}

	// Model is a documented dbt model.
	Model struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Columns     []Column `yaml:"columns"`
	}

	// Schema is a dbt (version 2) properties file.
	Schema struct {
		Version int     `yaml:"version"`
		Models  []Model `yaml:"models"`
	}
)

// DocRef returns the dbt expression referencing the documentation block called name.
func DocRef(name string) string {
	return fmt.Sprintf(`{{ doc("%s") }}`, name)
}

// BuildSchema returns the properties document for model with one entry per column, in order.
// A nil idx is treated as an empty index.
//
// Example:
//
//	idx := docindex.New(os.DirFS("."), "models/documentation/columns")
//	schema := modeldoc.BuildSchema("dim_users", []string{"id", "email"}, idx, modeldoc.SchemaOptions{})
//
//	_ = schema.Encode(os.Stdout)
func BuildSchema(model string, columns []string, idx Lookup, opts SchemaOptions) *Schema {
	cols := make([]Column, 0, len(columns))
	for _, name := range columns {
		cols = append(cols, Column{Name: name, Description: describe(name, idx, opts)})
	}

	return &Schema{
		Version: 2,
		Models: []Model{{
			Name:        model,
			Description: DocRef(model),
			Columns:     cols,
		}},
	}
}

// Encode writes the schema as YAML.
func (s *Schema) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "failed to encode schema")
	}

	return errors.Wrap(enc.Close(), "failed to close yaml encoder")
}

func describe(column string, idx Lookup, opts SchemaOptions) string {
	if idx != nil && idx.Exists(column) {
		return DocRef(column)
	}

	if opts.Elaborate != nil {
		if desc := opts.Elaborate(column); desc != "" {
			return desc
		}
	}

	return PlaceholderDescription
}
