// Package modeldoc generates the documentation scaffolding for a dbt model.
//
// For a model SQL file it produces two artifacts:
//   - a Markdown file holding a `{% docs <model> %}` block (title, grain and description), stored
//     under the project's model documentation directory grouped by model type
//   - a YAML schema file next to the model listing every projected column
//
// Column descriptions reference an existing documentation snippet (`{{ doc("<column>") }}`)
// whenever the supplied Lookup knows about one, and fall back to a placeholder otherwise.
//
// The package makes decisions but never prompts. Where user input is needed (overwriting an
// existing file, choosing the documentation type for a model) it either returns a
// classification for the caller to act upon or delegates to a caller supplied Confirmer.
//
// Example:
//
//	idx := docindex.New(os.DirFS("."), "models/documentation/columns")
//	gen := &modeldoc.Generator{
//		ModelDocsDir: "models/documentation/models",
//		Index:        idx,
//		Confirm:      modeldoc.ConfirmFunc(func(string) (bool, error) { return true, nil }),
//	}
//
//	res, err := gen.Generate(ctx, modeldoc.Request{
//		ModelPath:   "models/dim/dim_users.sql",
//		Grain:       "One row per user",
//		Description: "All registered users",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(res.SchemaPath) // models/dim/dim_users.yml
package modeldoc
