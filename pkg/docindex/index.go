// Package docindex answers whether a Markdown documentation snippet already exists for a name.
//
// dbt projects keep reusable `{% docs %}` blocks in Markdown files whose stem matches the
// column (or model) they describe. The index scans the configured directories once, on first
// use, and keeps the set of stems for the lifetime of the Index value. There is no
// invalidation: build a new Index to observe new files.
//
// Example:
//
//	idx := docindex.New(os.DirFS(projectRoot), "models/documentation/columns")
//	if idx.Exists("customer_id") {
//		fmt.Println(`description: {{ doc("customer_id") }}`)
//	}
package docindex

import (
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"
)

// Index is a lazily built, read-only set of documentation snippet names.
type Index struct {
	fsys fs.FS
	dirs []string

	once  sync.Once
	names map[string]struct{}
}

// New returns an Index over the `*.md` files directly inside each of dirs (relative to fsys).
// Directories that don't exist are treated as empty. Nothing is read until the first query.
func New(fsys fs.FS, dirs ...string) *Index {
	return &Index{fsys: fsys, dirs: dirs}
}

// Exists reports whether a snippet file named `<name>.md` exists in any configured directory.
func (i *Index) Exists(name string) bool {
	i.once.Do(i.scan)

	_, ok := i.names[name]
	return ok
}

// Names returns the sorted snippet names.
func (i *Index) Names() []string {
	i.once.Do(i.scan)

	names := make([]string, 0, len(i.names))
	for name := range i.names {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (i *Index) scan() {
	i.names = make(map[string]struct{})

	for _, dir := range i.dirs {
		entries, err := fs.ReadDir(i.fsys, dir)
		if err != nil {
			slog.Debug("skipping documentation directory", "dir", dir, "err", err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
				continue
			}

			i.names[strings.TrimSuffix(entry.Name(), ".md")] = struct{}{}
		}
	}

	slog.Debug("indexed documentation snippets", "dirs", i.dirs, "count", len(i.names))
}
