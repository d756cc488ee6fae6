package parser

import "strings"

// StatementType is the classification of a SQL statement based on its leading keyword.
type StatementType string

const (
	StatementSelect   StatementType = "SELECT"
	StatementInsert   StatementType = "INSERT"
	StatementUpdate   StatementType = "UPDATE"
	StatementDelete   StatementType = "DELETE"
	StatementMerge    StatementType = "MERGE"
	StatementCreate   StatementType = "CREATE"
	StatementDrop     StatementType = "DROP"
	StatementAlter    StatementType = "ALTER"
	StatementTruncate StatementType = "TRUNCATE"
	StatementGrant    StatementType = "GRANT"
	StatementReplace  StatementType = "REPLACE"
	StatementUnknown  StatementType = "UNKNOWN"
)

var dmlTypes = map[string]StatementType{
	"SELECT": StatementSelect,
	"INSERT": StatementInsert,
	"UPDATE": StatementUpdate,
	"DELETE": StatementDelete,
	"MERGE":  StatementMerge,
}

var ddlTypes = map[string]StatementType{
	"CREATE":   StatementCreate,
	"DROP":     StatementDrop,
	"ALTER":    StatementAlter,
	"TRUNCATE": StatementTruncate,
	"GRANT":    StatementGrant,
	"REPLACE":  StatementReplace,
}

// Statement is a single `;` delimited SQL statement.
type Statement struct {
	Type StatementType

	// Tokens holds the significant tokens (no whitespace or comments) of the statement.
	Tokens []Token
}

// SplitStatements splits tokens into statements at top-level semicolons and
// classifies each one. Statements without significant tokens are dropped.
func SplitStatements(tokens []Token) []Statement {
	var (
		stmts   []Statement
		current []Token
		depth   int
	)

	flush := func() {
		if len(current) > 0 {
			stmts = append(stmts, Statement{Type: classify(current), Tokens: current})
		}
		current = nil
	}

	for _, tok := range tokens {
		if !tok.significant() {
			continue
		}

		switch {
		case opens(tok):
			depth++
		case closes(tok):
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.IsPunct(";"):
			flush()
			continue
		}

		current = append(current, tok)
	}

	flush()
	return stmts
}

func classify(tokens []Token) StatementType {
	tokens = unwrap(tokens)
	if len(tokens) == 0 || tokens[0].Kind != TokenKeyword {
		return StatementUnknown
	}

	kw := strings.ToUpper(tokens[0].Value)
	if typ, ok := dmlTypes[kw]; ok {
		return typ
	}

	if typ, ok := ddlTypes[kw]; ok {
		return typ
	}

	if kw != "WITH" {
		return StatementUnknown
	}

	// WITH statements take the type of the first top-level DML keyword after the CTEs
	depth := 0
	for _, tok := range tokens[1:] {
		switch {
		case opens(tok):
			depth++
		case closes(tok):
			depth--
		case depth == 0 && tok.Kind == TokenKeyword:
			if typ, ok := dmlTypes[strings.ToUpper(tok.Value)]; ok {
				return typ
			}
		}
	}

	return StatementUnknown
}

// unwrap strips parentheses enclosing the whole token list.
func unwrap(tokens []Token) []Token {
	for len(tokens) >= 2 && tokens[0].IsPunct("(") && matching(tokens, 0) == len(tokens)-1 {
		tokens = tokens[1 : len(tokens)-1]
	}

	return tokens
}

// matching returns the index of the token closing the group opened at start, or
// -1 when the group is never closed.
func matching(tokens []Token, start int) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch {
		case opens(tokens[i]):
			depth++
		case closes(tokens[i]):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func opens(tok Token) bool {
	return tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{")
}

func closes(tok Token) bool {
	return tok.IsPunct(")") || tok.IsPunct("]") || tok.IsPunct("}")
}
