package docindex_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/pseudomuto/palm-dbt/pkg/docindex"
	"github.com/stretchr/testify/require"
)

// countingFS records how many times directories are read.
type countingFS struct {
	fstest.MapFS
	reads int
}

func (c *countingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	c.reads++
	return c.MapFS.ReadDir(name)
}

func TestIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/columns/customer_id.md":     {Data: []byte(`{% docs customer_id %}id{% enddocs %}`)},
		"docs/columns/email.md":           {Data: []byte("")},
		"docs/columns/notes.txt":          {Data: []byte("")},
		"docs/columns/nested/ignored.md":  {Data: []byte("")},
		"docs/shared/created_at.md":       {Data: []byte("")},
		"docs/shared/folder.md/inner.txt": {Data: []byte("")},
	}

	idx := docindex.New(fsys, "docs/columns", "docs/shared", "docs/missing")

	t.Run("exists", func(t *testing.T) {
		require.True(t, idx.Exists("customer_id"))
		require.True(t, idx.Exists("email"))
		require.True(t, idx.Exists("created_at"))
	})

	t.Run("missing", func(t *testing.T) {
		require.False(t, idx.Exists("notes"))
		require.False(t, idx.Exists("ignored"))
		require.False(t, idx.Exists("folder"))
		require.False(t, idx.Exists("unknown"))
	})

	t.Run("names", func(t *testing.T) {
		require.Equal(t, []string{"created_at", "customer_id", "email"}, idx.Names())
	})
}

func TestIndexScansOnce(t *testing.T) {
	fsys := &countingFS{MapFS: fstest.MapFS{
		"a/one.md": {Data: []byte("")},
		"b/two.md": {Data: []byte("")},
	}}

	idx := docindex.New(fsys, "a", "b")
	require.Zero(t, fsys.reads)

	for range 10 {
		require.True(t, idx.Exists("one"))
		require.False(t, idx.Exists("three"))
	}

	require.Equal(t, 2, fsys.reads)

	// files added after the first scan are not observed
	fsys.MapFS["a/three.md"] = &fstest.MapFile{Data: []byte("")}
	require.False(t, idx.Exists("three"))
	require.Equal(t, 2, fsys.reads)
}

func TestIndexNoDirectories(t *testing.T) {
	idx := docindex.New(fstest.MapFS{})
	require.False(t, idx.Exists("anything"))
	require.Empty(t, idx.Names())
}
