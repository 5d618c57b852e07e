package lexer

import (
	"fmt"
)

// Token - is simple structure that carries information about a single token
type Token struct {
	// Type is one of TokenType enum values
	Typ TokenType

	// Value is string representation of the token
	Value string

	// Location is the location of the token in the source code
	Location Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Typ, t.Value, t.Location)
}

// Go lacks of enums, that being said, we need to mimic it below
type TokenType int

// TokenType.String - Just returns the string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TokenParenOpen:
		return "open paren"
	case TokenParenClose:
		return "close paren"
	case TokenBraceOpen:
		return "open brace"
	case TokenBraceClose:
		return "close brace"
	case TokenSemicolon:
		return "semicolon"
	case TokenName:
		return "name"
	case TokenNumber:
		return "number"
	case TokenEquals:
		return "equals sign"
	case TokenPlus:
		return "plus sign"
	case TokenStar:
		return "star"
	case TokenLess:
		return "less-than sign"
	case TokenEOF:
		return "end of input"
	}

	return "<unknown>"
}

// Here using go's `iota` feature to autoincrement constants
const (
	// first token type need to be 0 (falsy value), which allows us to handle unknown token
	TokenUnknown TokenType = iota
	TokenParenOpen
	TokenParenClose
	TokenBraceOpen
	TokenBraceClose
	TokenSemicolon
	TokenName
	TokenNumber
	TokenEquals
	TokenPlus
	TokenStar
	TokenLess
	TokenEOF
)

// Dummy token needed for passing it as non-pointer
var UnknownToken = Token{Typ: TokenUnknown, Value: "<unknown>", Location: Location{}}

// Single-rune tokens, looked up by the rune itself.
var punctuation = map[rune]TokenType{
	'(': TokenParenOpen,
	')': TokenParenClose,
	'{': TokenBraceOpen,
	'}': TokenBraceClose,
	';': TokenSemicolon,
	'=': TokenEquals,
	'+': TokenPlus,
	'*': TokenStar,
	'<': TokenLess,
}

// Location - is simple location of a token
type Location struct {
	Col  int
	Row  int
	File string
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Row, l.Col)
}

// Using for represents scanned token in tokenQueue
type TokenResult struct {
	Token Token
	Error error
}
