package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// QueryLexer defines the token types of the query language.
var QueryLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Combination operators
	{Name: "Bang", Pattern: `!`},
	{Name: "Tick", Pattern: "`"},

	// Match operators
	{Name: "Caret", Pattern: `\^`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "At", Pattern: `@`},
	{Name: "Tilde", Pattern: `~`},

	// Punctuation
	{Name: "Comma", Pattern: `,`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "LAngle", Pattern: `<`},
	{Name: "RAngle", Pattern: `>`},

	// Identifiers, token runs and vector patterns
	{Name: "Word", Pattern: `[0-9A-Za-z\-]+`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
