package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// TokenKind classifies a lexed SQL token.
type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenWhitespace
	TokenComment
	TokenString
	TokenNumber
	TokenIdent
	TokenQuotedIdent
	TokenKeyword
	TokenOperator
	TokenPunct
)

// Token is a single lexed SQL token.
type Token struct {
	Kind  TokenKind
	Value string
}

var (
	// sqlLexer is a tolerant lexer for dbt flavoured SQL. The trailing Other rule
	// guarantees that any input can be tokenized.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'([^'\\]|\\.|'')*'`},
		{Name: "QuotedIdent", Pattern: `"([^"]|"")*"`},
		{Name: "BacktickIdent", Pattern: "`([^`\\\\]|\\\\.)*`"},
		{Name: "Number", Pattern: `\d+(\.\d*)?([eE][+-]?\d+)?`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$]*`},
		{Name: "Operator", Pattern: `::|\|\||!=|<>|<=|>=|=>`},
		{Name: "Punct", Pattern: `[(),.;=+\-*/%<>\[\]!:{}|~^&@#?]`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `.`},
	})

	tokenKinds = map[string]TokenKind{
		"Comment":          TokenComment,
		"MultilineComment": TokenComment,
		"String":           TokenString,
		"QuotedIdent":      TokenQuotedIdent,
		"BacktickIdent":    TokenQuotedIdent,
		"Number":           TokenNumber,
		"Ident":            TokenIdent,
		"Operator":         TokenOperator,
		"Punct":            TokenPunct,
		"Whitespace":       TokenWhitespace,
		"Other":            TokenOther,
	}

	// kindsByType maps the lexer's symbol table onto TokenKind
	kindsByType = func() map[lexer.TokenType]TokenKind {
		res := make(map[lexer.TokenType]TokenKind)
		for name, typ := range sqlLexer.Symbols() {
			if kind, ok := tokenKinds[name]; ok {
				res[typ] = kind
			}
		}
		return res
	}()

	// keywords are identifiers that never name a column on their own
	keywords = toSet(
		"ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CREATE", "CROSS",
		"DELETE", "DESC", "DISTINCT", "DROP", "ELSE", "END", "EXCEPT", "EXISTS", "FALSE",
		"FETCH", "FROM", "FULL", "GRANT", "GROUP", "HAVING", "ILIKE", "IN", "INNER",
		"INSERT", "INTERSECT", "INTERVAL", "INTO", "IS", "JOIN", "LATERAL", "LEFT", "LIKE",
		"LIMIT", "MERGE", "NATURAL", "NOT", "NULL", "NULLS", "OFFSET", "ON", "OR", "ORDER",
		"OUTER", "OVER", "PARTITION", "QUALIFY", "RECURSIVE", "REPLACE", "RIGHT", "SELECT",
		"SET", "TABLE", "THEN", "TRUE", "TRUNCATE", "UNION", "UPDATE", "USING", "VALUES",
		"VIEW", "WHEN", "WHERE", "WINDOW", "WITH",
	)
)

// Tokenize splits SQL text into tokens. Identifiers matching a SQL keyword are
// reported as TokenKeyword. Whitespace and comments are retained so callers can
// reconstruct the source.
//
// Example:
//
//	tokens, err := parser.Tokenize("select id from users")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, tok := range tokens {
//		fmt.Printf("%d %q\n", tok.Kind, tok.Value)
//	}
func Tokenize(sql string) ([]Token, error) {
	lex, err := sqlLexer.LexString("", sql)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}

		kind := kindsByType[tok.Type]
		if kind == TokenIdent && isKeyword(tok.Value) {
			kind = TokenKeyword
		}

		tokens = append(tokens, Token{Kind: kind, Value: tok.Value})
	}

	return tokens, nil
}

// IsKeyword reports whether the token is one of the given keywords (case insensitive).
// With no arguments it reports whether the token is any keyword.
func (t Token) IsKeyword(kws ...string) bool {
	if t.Kind != TokenKeyword {
		return false
	}

	if len(kws) == 0 {
		return true
	}

	for _, kw := range kws {
		if strings.EqualFold(t.Value, kw) {
			return true
		}
	}

	return false
}

// IsPunct reports whether the token is the given punctuation character.
func (t Token) IsPunct(p string) bool {
	return t.Kind == TokenPunct && t.Value == p
}

// IsName reports whether the token can name something (plain or quoted identifier).
func (t Token) IsName() bool {
	return t.Kind == TokenIdent || t.Kind == TokenQuotedIdent
}

// Unquoted returns the token value without surrounding identifier quotes.
func (t Token) Unquoted() string {
	if t.Kind != TokenQuotedIdent || len(t.Value) < 2 {
		return t.Value
	}

	q := t.Value[:1]
	inner := t.Value[1 : len(t.Value)-1]
	return strings.ReplaceAll(inner, q+q, q)
}

func (t Token) significant() bool {
	return t.Kind != TokenWhitespace && t.Kind != TokenComment
}

func isKeyword(s string) bool {
	_, ok := keywords[strings.ToUpper(s)]
	return ok
}

func toSet(values ...string) map[string]struct{} {
	res := make(map[string]struct{}, len(values))
	for _, v := range values {
		res[v] = struct{}{}
	}
	return res
}
