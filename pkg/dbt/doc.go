// Package dbt builds the dbt shell command lines executed by palm-dbt.
//
// Every builder is a pure function from an options struct to a Command: an ordered list of dbt
// invocations that renders to a single `&&` joined shell string. Segments always appear in the
// same order:
//
//  1. project preparation (`dbt clean`, `dbt deps`)
//  2. seeding (`dbt seed --full-refresh`)
//  3. the primary command (`run`, `test`, `snapshot`, `compile`, ...) and its flags
//  4. branch schema cleanup (`dbt run-operation drop_branch_schemas`)
//
// Example:
//
//	cmd := dbt.Run(dbt.RunOptions{
//		Select: []string{"dim_users+"},
//		Clean:  true,
//	})
//
//	fmt.Println(cmd.Render())
//	// dbt seed --full-refresh && dbt run --select dim_users+ --fail-fast && dbt run-operation drop_branch_schemas
package dbt
