package parser_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/palm-dbt/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens, err := parser.Tokenize("select \"Id\", 'it''s' as s -- note\nfrom t where x <> 1.5;")
	require.NoError(t, err)

	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Value)
	}
	require.Equal(t, "select \"Id\", 'it''s' as s -- note\nfrom t where x <> 1.5;", sb.String())

	var significant []parser.Token
	for _, tok := range tokens {
		if tok.Kind != parser.TokenWhitespace {
			significant = append(significant, tok)
		}
	}

	require.Equal(t, []parser.Token{
		{Kind: parser.TokenKeyword, Value: "select"},
		{Kind: parser.TokenQuotedIdent, Value: "\"Id\""},
		{Kind: parser.TokenPunct, Value: ","},
		{Kind: parser.TokenString, Value: "'it''s'"},
		{Kind: parser.TokenKeyword, Value: "as"},
		{Kind: parser.TokenIdent, Value: "s"},
		{Kind: parser.TokenComment, Value: "-- note"},
		{Kind: parser.TokenKeyword, Value: "from"},
		{Kind: parser.TokenIdent, Value: "t"},
		{Kind: parser.TokenKeyword, Value: "where"},
		{Kind: parser.TokenIdent, Value: "x"},
		{Kind: parser.TokenOperator, Value: "<>"},
		{Kind: parser.TokenNumber, Value: "1.5"},
		{Kind: parser.TokenPunct, Value: ";"},
	}, significant)
}

func TestTokenizeUnknownCharacters(t *testing.T) {
	tokens, err := parser.Tokenize("select a from t \\ $")
	require.NoError(t, err)
	require.Equal(t, parser.TokenOther, tokens[len(tokens)-1].Kind)
}

func TestTokenUnquoted(t *testing.T) {
	require.Equal(t, `a"b`, parser.Token{Kind: parser.TokenQuotedIdent, Value: `"a""b"`}.Unquoted())
	require.Equal(t, "name", parser.Token{Kind: parser.TokenQuotedIdent, Value: "`name`"}.Unquoted())
	require.Equal(t, "plain", parser.Token{Kind: parser.TokenIdent, Value: "plain"}.Unquoted())
}

func TestSplitStatements(t *testing.T) {
	tokens, err := parser.Tokenize(`
		with x as (select 1; ) select * from x;
		insert into t select * from x;
		with y as (select 1) delete from t;
		{{ ref('foo') }};
		;
		drop table t
	`)
	require.NoError(t, err)

	stmts := parser.SplitStatements(tokens)
	types := make([]parser.StatementType, 0, len(stmts))
	for _, s := range stmts {
		types = append(types, s.Type)
	}

	require.Equal(t, []parser.StatementType{
		parser.StatementSelect,
		parser.StatementInsert,
		parser.StatementDelete,
		parser.StatementUnknown,
		parser.StatementDrop,
	}, types)
}
