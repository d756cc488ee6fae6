package parser_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestExtractColumns(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "plain and aliased columns",
			sql:  "SELECT a, b AS c FROM t",
			want: []string{"a", "c"},
		},
		{
			name: "implicit alias",
			sql:  "select id, lower(email) contact_email from users",
			want: []string{"id", "contact_email"},
		},
		{
			name: "dotted references use the final part",
			sql:  "select u.id, analytics.users.email from analytics.users u",
			want: []string{"id", "email"},
		},
		{
			name: "comments are ignored",
			sql:  "select id, name -- the name\n from foo",
			want: []string{"id", "name"},
		},
		{
			name: "cte names are skipped",
			sql: `
				with orders as (
					select * from raw.orders
				), customers (id, name) as (
					select id, name from raw.customers
				)
				select orders.id, customers.name as customer_name
				from orders
				join customers on customers.id = orders.customer_id
			`,
			want: []string{"id", "customer_name"},
		},
		{
			name: "simple templates are stripped",
			sql: `{{ config(materialized=table) }}
				select id, created_at from {{ source_table }}`,
			want: []string{"id", "created_at"},
		},
		{
			name: "complex templates are tolerated",
			sql:  "select id, status from {{ ref('stg_orders') }}",
			want: []string{"id", "status"},
		},
		{
			name: "duplicates are preserved",
			sql:  "select id, id, a.id from t",
			want: []string{"id", "id", "id"},
		},
		{
			name: "quoted identifiers are unquoted",
			sql:  "select \"Order Id\", `total` as `Total Amount` from t",
			want: []string{"Order Id", "Total Amount"},
		},
		{
			name: "function names are used when other columns exist",
			sql:  "select customer_id, count(*) from orders group by 1",
			want: []string{"customer_id", "count"},
		},
		{
			name: "case expressions require an alias",
			sql: `select
					id,
					case when amount > 100 then 'big' else 'small' end as size,
					case when amount > 0 then 1 end
				from payments`,
			want: []string{"id", "size"},
		},
		{
			name: "casts and distinct",
			sql:  "select distinct id::varchar, cast(amount as numeric) as amount from payments",
			want: []string{"id", "amount"},
		},
		{
			name: "wildcards are skipped",
			sql:  "select o.*, 1 as one, c.name from orders o join customers c on c.id = o.cid",
			want: []string{"one", "name"},
		},
		{
			name: "last eligible statement wins",
			sql:  "select a from t; insert into x values (1); select b, c from u;",
			want: []string{"b", "c"},
		},
		{
			name: "set operations use the first select list",
			sql:  "select id, name from a union all select id, title from b",
			want: []string{"id", "name"},
		},
		{
			name: "subqueries in the select list",
			sql:  "select id, (select max(x) from y) as max_x from t",
			want: []string{"id", "max_x"},
		},
		{
			name: "jinja blocks around items",
			sql:  "select id, {% if var('x') %} foo, {% endif %} bar from t",
			want: []string{"id", "foo", "bar"},
		},
		{
			name: "trailing jinja blocks",
			sql:  "select id, {% if is_incremental() %} updated_at {% endif %}, name from t",
			want: []string{"id", "updated_at", "name"},
		},
		{
			name: "unicode identifiers",
			sql:  "select café, naïve_ts as größe from t",
			want: []string{"café", "größe"},
		},
		{
			name: "wrapped statement",
			sql:  "(select id, name from t)",
			want: []string{"id", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ExtractColumns(tt.sql)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractColumnsErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{name: "empty", sql: ""},
		{name: "only templates", sql: "{{ config(materialized=table) }}"},
		{name: "only wildcard", sql: "select * from t"},
		{name: "single function", sql: "select count(*) from t"},
		{name: "only ddl", sql: "create table foo (id int)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := parser.ExtractColumns(tt.sql)
			require.Nil(t, cols)
			require.Error(t, err)
			require.True(t, errors.Is(err, parser.ErrNoColumnsFound))

			var target *parser.NoColumnsFoundError
			require.ErrorAs(t, err, &target)
		})
	}
}

func TestStripTemplates(t *testing.T) {
	sql := "  {{ config(materialized=table) }}\nselect * from {{ ref('x') }}  "
	require.Equal(t, "select * from {{ ref('x') }}", parser.StripTemplates(sql))
}
