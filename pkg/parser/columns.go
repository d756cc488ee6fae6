package parser

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoColumnsFound is matched (via errors.Is) by every *NoColumnsFoundError.
var ErrNoColumnsFound = errors.New("could not find column identifiers")

// NoColumnsFoundError is returned by ExtractColumns when the SQL does not project
// any nameable columns.
type NoColumnsFoundError struct {
	// Statements is the number of statements that were inspected.
	Statements int
}

func (e *NoColumnsFoundError) Error() string {
	return errors.Wrapf(ErrNoColumnsFound, "inspected %d statement(s)", e.Statements).Error()
}

// Is makes the error comparable to ErrNoColumnsFound.
func (e *NoColumnsFoundError) Is(target error) bool {
	return target == ErrNoColumnsFound
}

var (
	templatePattern = regexp.MustCompile(`\{\{[A-Za-z\n\s()=_,]+\}\}`)

	// clauseKeywords terminate a SELECT list
	clauseKeywords = []string{
		"FROM", "WHERE", "GROUP", "ORDER", "HAVING", "LIMIT", "UNION", "INTERSECT",
		"EXCEPT", "QUALIFY", "WINDOW", "INTO", "OFFSET", "FETCH",
	}
)

// StripTemplates removes simple `{{ ... }}` placeholders (e.g. `{{ config(materialized=table) }}`)
// and trims surrounding whitespace. Placeholders containing quotes or dots are left alone and
// are skipped later by the column extractor.
func StripTemplates(sql string) string {
	return strings.TrimSpace(templatePattern.ReplaceAllString(sql, ""))
}

// ExtractColumns returns the names of the columns projected by the SELECT list of a dbt model,
// in source order and with duplicates preserved.
//
// Aliased expressions yield their alias, dotted references yield their final part and unaliased
// function calls yield the function name when they are one of several projected expressions.
// Statements classified as anything other than SELECT or UNKNOWN are ignored and when several
// statements qualify, the last one wins.
//
// Example:
//
//	cols, err := parser.ExtractColumns("select u.id, u.email as contact from users u")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(cols) // [id contact]
func ExtractColumns(sql string) ([]string, error) {
	tokens, err := Tokenize(StripTemplates(sql))
	if err != nil {
		return nil, err
	}

	var (
		columns   []string
		inspected int
	)

	for _, stmt := range SplitStatements(tokens) {
		if stmt.Type != StatementSelect && stmt.Type != StatementUnknown {
			continue
		}

		inspected++
		columns = stmt.Columns()
	}

	if len(columns) == 0 {
		return nil, &NoColumnsFoundError{Statements: inspected}
	}

	return columns, nil
}

// Columns returns the column names projected by the statement.
func (s Statement) Columns() []string {
	items := splitItems(selectList(unwrap(s.Tokens)))

	var columns []string
	for _, item := range items {
		if name, ok := itemName(item, len(items) > 1); ok {
			columns = append(columns, name)
		}
	}

	return columns
}

// selectList returns the tokens from the first top-level SELECT up to the clause that ends its
// projection. Without a top-level SELECT the whole statement is returned.
func selectList(tokens []Token) []Token {
	start, depth := -1, 0

	for i, tok := range tokens {
		switch {
		case opens(tok):
			depth++
			continue
		case closes(tok):
			if depth > 0 {
				depth--
			}
			continue
		case depth > 0:
			continue
		}

		if start < 0 {
			if tok.IsKeyword("SELECT") {
				start = i
			}
			continue
		}

		if tok.IsKeyword(clauseKeywords...) {
			return tokens[start:i]
		}
	}

	if start < 0 {
		return tokens
	}

	return tokens[start:]
}

// splitItems splits tokens at top-level commas.
func splitItems(tokens []Token) [][]Token {
	var (
		items   [][]Token
		current []Token
		depth   int
	)

	for _, tok := range tokens {
		switch {
		case opens(tok):
			depth++
		case closes(tok):
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.IsPunct(","):
			items = append(items, current)
			current = nil
			continue
		}

		current = append(current, tok)
	}

	return append(items, current)
}

func itemName(item []Token, multi bool) (string, bool) {
	item = trimModifiers(item)
	if len(item) == 0 || isCTEDefinition(item) {
		return "", false
	}

	n := len(item)
	last := item[n-1]

	// expr AS alias
	if n >= 2 && item[n-2].IsKeyword("AS") && (last.IsName() || last.Kind == TokenKeyword) {
		if n == 2 {
			return "", false
		}
		return last.Unquoted(), true
	}

	// expr alias
	if n >= 2 && last.IsName() && precedesAlias(item[n-2]) {
		return last.Unquoted(), true
	}

	if item[0].Kind == TokenKeyword {
		return "", false
	}

	parts, next := dottedName(item)
	if len(parts) == 0 {
		return "", false
	}

	if next < n && item[next].IsPunct("(") {
		if !multi {
			return "", false
		}
	}

	return parts[len(parts)-1], true
}

// trimModifiers drops leading SELECT/DISTINCT style modifiers and any `{% ... %}` blocks
// surrounding a projection item.
func trimModifiers(item []Token) []Token {
	item = trimTrailingBlocks(item)

	for len(item) > 0 {
		switch {
		case startsBlock(item, 0):
			end := matching(item, 0)
			if end < 0 {
				return nil
			}
			item = item[end+1:]
		case item[0].IsKeyword("SELECT", "ALL", "WITH", "RECURSIVE"):
			item = item[1:]
		case item[0].IsKeyword("DISTINCT"):
			item = item[1:]
			if len(item) > 1 && item[0].IsKeyword("ON") && item[1].IsPunct("(") {
				end := matching(item, 1)
				if end < 0 {
					return nil
				}
				item = item[end+1:]
			}
		default:
			return item
		}
	}

	return item
}

// trimTrailingBlocks drops `{% ... %}` blocks that end a projection item.
func trimTrailingBlocks(item []Token) []Token {
	for n := len(item); n >= 4 && item[n-1].IsPunct("}") && item[n-2].IsPunct("%"); n = len(item) {
		start, depth := -1, 0
		for i := n - 1; i >= 0; i-- {
			switch {
			case closes(item[i]):
				depth++
			case opens(item[i]):
				depth--
			}

			if depth == 0 {
				start = i
				break
			}
		}

		if start < 0 || !startsBlock(item, start) {
			return item
		}

		item = item[:start]
	}

	return item
}

// startsBlock reports whether a `{%` tag begins at tokens[i].
func startsBlock(tokens []Token, i int) bool {
	return i+1 < len(tokens) && tokens[i].IsPunct("{") && tokens[i+1].IsPunct("%")
}

// isCTEDefinition reports whether the item looks like `name [(cols)] AS (`.
func isCTEDefinition(item []Token) bool {
	if len(item) < 3 || !item[0].IsName() {
		return false
	}

	i := 1
	if item[i].IsPunct("(") {
		end := matching(item, i)
		if end < 0 {
			return false
		}
		i = end + 1
	}

	return i+1 < len(item) && item[i].IsKeyword("AS") && item[i+1].IsPunct("(")
}

func precedesAlias(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenQuotedIdent, TokenNumber, TokenString:
		return true
	case TokenPunct:
		return tok.Value == ")" || tok.Value == "]"
	case TokenKeyword:
		return tok.IsKeyword("END")
	}

	return false
}

// dottedName parses `a.b.c` at the start of item, returning the unquoted parts and the index of
// the first token after the name. Wildcards (`*`, `t.*`) yield no parts.
func dottedName(item []Token) ([]string, int) {
	var parts []string

	i := 0
	for i < len(item) {
		if !item[i].IsName() {
			return nil, i
		}

		parts = append(parts, item[i].Unquoted())
		i++

		if i+1 < len(item) && item[i].IsPunct(".") {
			i++
			continue
		}

		break
	}

	return parts, i
}
