// Package token declares the types representing the lexical tokens of Lox source code.
package token

import "fmt"

// Type is the type of a lexical token.
type Type int

// The list of all token types.
const (
	Illegal Type = iota
	EOF

	// Literals
	Ident
	String
	Number

	// Single-character punctuators
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character operators
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
)

// Lox identifiers with special meaning to the resolver and evaluator.
const (
	ThisIdent  = "this"
	SuperIdent = "super"
	InitIdent  = "init"
)

var typeStrings = map[Type]string{
	Illegal:      "illegal",
	EOF:          "EOF",
	Ident:        "identifier",
	String:       "string",
	Number:       "number",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	Fun:          "fun",
	For:          "for",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
}

var keywordTypes = map[string]Type{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupIdent returns the keyword type for ident, or Ident if it isn't a reserved word.
func LookupIdent(ident string) Type {
	if t, ok := keywordTypes[ident]; ok {
		return t
	}
	return Ident
}

func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Position describes the origin of a [Token] in the source, for the purposes of error reporting.
// The zero value denotes end of file, since no valid token begins before line 1.
type Position struct {
	Line int // 1-based line on which the token starts. 0 means end of file.
}

// AtEOF reports whether the position represents the end of the source.
func (p Position) AtEOF() bool {
	return p.Line == 0
}

// String formats the position the way it appears in error messages, e.g. "line 3" or "end of file".
func (p Position) String() string {
	if p.AtEOF() {
		return "end of file"
	}
	return fmt.Sprintf("line %d", p.Line)
}

// Token is a lexical token of Lox source code together with the position it was scanned from.
type Token struct {
	Type Type
	// Lexeme is the raw source text for Ident and Number tokens, and the unquoted contents (no surrounding
	// quotes) for String tokens. It is empty for punctuators and keywords.
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (%s)", t.Type, t.Lexeme, t.Pos)
}
