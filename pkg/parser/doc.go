// Package parser extracts output column names from dbt model SQL.
//
// dbt models are SELECT statements that are frequently not valid SQL until
// dbt renders their Jinja blocks, so this package does not attempt to build a
// complete AST. Instead it tokenizes the model with a participle lexer, splits
// the input into statements, locates the top-level SELECT list and derives a
// name for every projected expression.
//
// Key features:
//   - Tolerant tokenizer (unknown characters never abort extraction)
//   - Simple `{{ ... }}` placeholder stripping before tokenization
//   - Alias resolution for both `expr AS name` and `expr name`
//   - CTE definitions (`name AS (...)`) are never reported as columns
//   - Duplicate columns are preserved in source order
//
// Basic usage:
//
//	columns, err := parser.ExtractColumns(`
//		with orders as (select * from {{ ref('stg_orders') }})
//		select id, customer_id as customer, count(*) as order_count
//		from orders
//		group by 1, 2
//	`)
//	if err != nil {
//		if errors.Is(err, parser.ErrNoColumnsFound) {
//			log.Fatal("model has no documentable columns")
//		}
//		log.Fatal(err)
//	}
//
//	fmt.Println(columns) // [id customer order_count]
//
// Known limitation: CTE detection is a heuristic. An identifier immediately
// followed by `AS (` is treated as a CTE definition, which covers every
// well-formed WITH clause but cannot distinguish all pre-rendered Jinja shapes.
package parser
