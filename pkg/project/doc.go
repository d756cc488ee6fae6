// Package project works with a dbt project on disk.
//
// A Project wraps the directory holding dbt_project.yml. Once loaded it knows where the project
// keeps its models, macros and documentation, and it can scaffold new models and install the
// branch schema macros palm-dbt relies on.
//
// Example:
//
//	proj := project.New(".")
//	if err := proj.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := proj.NewModel(project.ModelOptions{Name: "users", Type: "dim"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, path := range res.Created {
//		fmt.Println(path)
//	}
package project
