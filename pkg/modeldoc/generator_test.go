package modeldoc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/docindex"
	. "github.com/pseudomuto/palm-dbt/pkg/modeldoc"
	"github.com/pseudomuto/palm-dbt/pkg/parser"
	"github.com/stretchr/testify/require"
)

const modelSQL = `{{ config(materialized=table) }}

with users as (
    select * from {{ ref('stg_users') }}
)

select
    users.id,
    users.email,
    users.created_at as signed_up_at
from users
`

func setupProject(t *testing.T, docTypes ...string) string {
	t.Helper()

	root := t.TempDir()
	write := func(path, content string) {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	write("models/marts/dim/dim_users.sql", modelSQL)
	write("models/documentation/columns/email.md", `{% docs email %}Email{% enddocs %}`)
	for _, typ := range docTypes {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "models/documentation/models", typ), 0o755))
	}

	return root
}

func newGenerator(root string) *Generator {
	return &Generator{
		Root:         root,
		ModelDocsDir: "models/documentation/models",
		Index:        docindex.New(os.DirFS(root), "models/documentation/columns"),
		Confirm:      ConfirmFunc(func(string) (bool, error) { return true, nil }),
	}
}

func TestGenerate(t *testing.T) {
	t.Run("unambiguous destination", func(t *testing.T) {
		root := setupProject(t, "dim", "fact")

		res, err := newGenerator(root).Generate(context.Background(), Request{
			ModelPath:   "models/marts/dim/dim_users.sql",
			Grain:       "One row per user",
			Description: "Every registered user.",
		})
		require.NoError(t, err)
		require.Equal(t, "dim_users", res.Model)
		require.Equal(t, []string{"id", "email", "signed_up_at"}, res.Columns)
		require.Equal(t, filepath.Join("models/documentation/models", "dim", "dim_users.md"), res.MarkdownPath)
		require.Equal(t, filepath.Join("models/marts/dim", "dim_users.yml"), res.SchemaPath)
		require.True(t, res.MarkdownWritten)
		require.True(t, res.SchemaWritten)

		yml, err := os.ReadFile(filepath.Join(root, res.SchemaPath))
		require.NoError(t, err)
		require.Contains(t, string(yml), `description: '{{ doc("email") }}'`)
		require.Contains(t, string(yml), "name: signed_up_at")

		md, err := os.ReadFile(filepath.Join(root, res.MarkdownPath))
		require.NoError(t, err)
		require.Contains(t, string(md), "# Dim Users")
	})

	t.Run("resolver picks the type", func(t *testing.T) {
		root := setupProject(t, "fact", "staging")

		var seen Destination
		gen := newGenerator(root)
		gen.Resolve = func(d Destination) (string, error) {
			seen = d
			return "fact", nil
		}

		res, err := gen.Generate(context.Background(), Request{ModelPath: "models/marts/dim/dim_users.sql"})
		require.NoError(t, err)
		require.Equal(t, NoMatch, seen.Kind)
		require.ElementsMatch(t, []string{"fact", "staging"}, seen.Candidates)
		require.FileExists(t, filepath.Join(root, "models/documentation/models/fact/dim_users.md"))
		require.Equal(t, filepath.Join("models/documentation/models", "fact", "dim_users.md"), res.MarkdownPath)
	})

	t.Run("unresolved destination", func(t *testing.T) {
		root := setupProject(t)

		_, err := newGenerator(root).Generate(context.Background(), Request{ModelPath: "models/marts/dim/dim_users.sql"})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnresolvedDestination))
		require.NoFileExists(t, filepath.Join(root, "models/marts/dim/dim_users.yml"))
	})

	t.Run("resolver returning nothing", func(t *testing.T) {
		root := setupProject(t, "fact")
		gen := newGenerator(root)
		gen.Resolve = func(Destination) (string, error) { return "  ", nil }

		_, err := gen.Generate(context.Background(), Request{ModelPath: "models/marts/dim/dim_users.sql"})
		require.True(t, errors.Is(err, ErrUnresolvedDestination))
	})

	t.Run("declined overwrite", func(t *testing.T) {
		root := setupProject(t, "dim")
		ymlPath := filepath.Join(root, "models/marts/dim/dim_users.yml")
		require.NoError(t, os.WriteFile(ymlPath, []byte("keep me"), 0o644))

		gen := newGenerator(root)
		gen.Confirm = ConfirmFunc(func(string) (bool, error) { return false, nil })

		res, err := gen.Generate(context.Background(), Request{ModelPath: "models/marts/dim/dim_users.sql"})
		require.NoError(t, err)
		require.True(t, res.MarkdownWritten)
		require.False(t, res.SchemaWritten)

		data, err := os.ReadFile(ymlPath)
		require.NoError(t, err)
		require.Equal(t, "keep me", string(data))
	})

	t.Run("no columns", func(t *testing.T) {
		root := setupProject(t, "dim")
		require.NoError(t, os.WriteFile(filepath.Join(root, "models/marts/dim/empty.sql"), []byte("select * from x"), 0o644))

		_, err := newGenerator(root).Generate(context.Background(), Request{ModelPath: "models/marts/dim/empty.sql"})
		require.Error(t, err)
		require.True(t, errors.Is(err, parser.ErrNoColumnsFound))
		require.NoFileExists(t, filepath.Join(root, "models/documentation/models/dim/empty.md"))
	})

	t.Run("missing model", func(t *testing.T) {
		_, err := newGenerator(t.TempDir()).Generate(context.Background(), Request{ModelPath: "models/nope.sql"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read model")
	})
}
