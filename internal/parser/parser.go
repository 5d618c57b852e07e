package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fuale/meaning/internal/lexer"
)

var (
	ErrTokenNotExpected = errors.New("token not expected")
	ErrBadNumber        = errors.New("number out of range")
)

// Root selects which grammar rule a whole source text must match.
type Root int

const (
	RootStatement Root = iota
	RootExpression
)

func (r Root) String() string {
	if r == RootExpression {
		return "expression"
	}
	return "statement"
}

// Names the grammar keeps for itself.
const (
	keywordWhile     = "while"
	keywordIf        = "if"
	keywordElse      = "else"
	keywordTrue      = "true"
	keywordFalse     = "false"
	keywordDoNothing = "do-nothing"
)

// Parser - is a recursive descent parser for Simple.
// Both binary operators and statement sequences nest to the right,
// so it turns
//
//	x = 1; y = x + 2 * 3
//
// to
//
//	Sequence { Assign{x, 1}, Assign{y, Add{x, Multiply{2, 3}}} }
type Parser struct {
	lexer *lexer.Lexer
}

func New(lexer *lexer.Lexer) *Parser {
	return &Parser{
		lexer: lexer,
	}
}

// Parse - parses the whole input as the given root, failing
// if anything is left over after it.
func (p *Parser) Parse(root Root) (Node, error) {
	var (
		n   Node
		err error
	)
	if root == RootExpression {
		n, err = p.parseExpression()
	} else {
		n, err = p.parseStatement()
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expectToken(lexer.TokenEOF); err != nil {
		return nil, err
	}

	return n, nil
}

// Parse - parses Simple source text as root.
func Parse(src string, root Root) (Node, error) {
	return New(lexer.New(strings.NewReader(src), "")).Parse(root)
}

func ParseStatement(src string) (Statement, error) {
	n, err := Parse(src, RootStatement)
	if err != nil {
		return nil, err
	}
	return n.(Statement), nil
}

func ParseExpression(src string) (Expression, error) {
	n, err := Parse(src, RootExpression)
	if err != nil {
		return nil, err
	}
	return n.(Expression), nil
}

// ParseAny - tries the statement grammar first and falls back to expressions.
// The statement error is the one reported when both fail.
func ParseAny(src string) (Node, error) {
	n, err := Parse(src, RootStatement)
	if err == nil {
		return n, nil
	}
	if e, exprErr := Parse(src, RootExpression); exprErr == nil {
		return e, nil
	}
	return nil, err
}

// parseStatement - a sequence is one or more statements split by semicolons.
func (p *Parser) parseStatement() (Statement, error) {
	first, err := p.parseSequenced()
	if err != nil {
		return nil, err
	}

	token, err := p.lexer.Peek(1)
	if err != nil {
		return nil, err
	}
	if token.Typ != lexer.TokenSemicolon {
		return first, nil
	}
	p.lexer.Consume()

	second, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return Sequence{First: first, Second: second}, nil
}

func (p *Parser) parseSequenced() (Statement, error) {
	token, err := p.lexer.Peek(1)
	if err != nil {
		return nil, err
	}

	if token.Typ != lexer.TokenName {
		return nil, unexpected(token, "statement")
	}

	switch token.Value {
	case keywordWhile:
		return p.parseWhile()
	case keywordIf:
		return p.parseIf()
	case keywordDoNothing:
		p.lexer.Consume()
		return DoNothing{}, nil
	}

	return p.parseAssign()
}

func (p *Parser) parseWhile() (Statement, error) {
	if err := p.expectKeyword(keywordWhile); err != nil {
		return nil, err
	}

	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return While{Condition: condition, Body: body}, nil
}

func (p *Parser) parseIf() (Statement, error) {
	if err := p.expectKeyword(keywordIf); err != nil {
		return nil, err
	}

	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	consequence, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword(keywordElse); err != nil {
		return nil, err
	}

	alternative, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return If{Condition: condition, Consequence: consequence, Alternative: alternative}, nil
}

func (p *Parser) parseAssign() (Statement, error) {
	name, err := p.expectToken(lexer.TokenName)
	if err != nil {
		return nil, err
	}
	if reserved(name.Value) {
		return nil, unexpected(name, "variable name")
	}

	if _, err := p.expectToken(lexer.TokenEquals); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return Assign{Name: name.Value, Value: value}, nil
}

// parseCondition - `(expression)` as it appears after while and if.
func (p *Parser) parseCondition() (Expression, error) {
	if _, err := p.expectToken(lexer.TokenParenOpen); err != nil {
		return nil, err
	}

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectToken(lexer.TokenParenClose); err != nil {
		return nil, err
	}

	return condition, nil
}

// parseBlock - `{ statement }`
func (p *Parser) parseBlock() (Statement, error) {
	if _, err := p.expectToken(lexer.TokenBraceOpen); err != nil {
		return nil, err
	}

	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectToken(lexer.TokenBraceClose); err != nil {
		return nil, err
	}

	return s, nil
}

// parseExpression - expressions come in three tiers of binding,
// `<` the loosest and `*` the tightest. Each tier parses the next
// tighter one and then, if its operator follows, recurses into itself.
func (p *Parser) parseExpression() (Expression, error) {
	return p.parseBinary(lexer.TokenLess)
}

// Operator tiers, loosest first.
var tiers = []lexer.TokenType{lexer.TokenLess, lexer.TokenPlus, lexer.TokenStar}

func (p *Parser) parseBinary(op lexer.TokenType) (Expression, error) {
	left, err := p.parseTighter(op)
	if err != nil {
		return nil, err
	}

	token, err := p.lexer.Peek(1)
	if err != nil {
		return nil, err
	}
	if token.Typ != op {
		return left, nil
	}
	p.lexer.Consume()

	right, err := p.parseBinary(op)
	if err != nil {
		return nil, err
	}

	switch op {
	case lexer.TokenLess:
		return LessThan{Left: left, Right: right}, nil
	case lexer.TokenPlus:
		return Add{Left: left, Right: right}, nil
	default:
		return Multiply{Left: left, Right: right}, nil
	}
}

func (p *Parser) parseTighter(op lexer.TokenType) (Expression, error) {
	for i, t := range tiers {
		if t == op && i+1 < len(tiers) {
			return p.parseBinary(tiers[i+1])
		}
	}
	return p.parseTerm()
}

func (p *Parser) parseTerm() (Expression, error) {
	token, err := p.lexer.Next()
	if err != nil {
		return nil, err
	}

	switch token.Typ {
	case lexer.TokenParenOpen:
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectToken(lexer.TokenParenClose); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.TokenNumber:
		n, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s at %s", ErrBadNumber, token.Value, token.Location)
		}
		return Number{Value: n}, nil
	case lexer.TokenName:
		switch token.Value {
		case keywordTrue:
			return Boolean{Value: true}, nil
		case keywordFalse:
			return Boolean{Value: false}, nil
		}
		if reserved(token.Value) {
			return nil, unexpected(token, "expression")
		}
		return Variable{Name: token.Value}, nil
	}

	return nil, unexpected(token, "expression")
}

func (p *Parser) expectKeyword(keyword string) error {
	token, err := p.expectToken(lexer.TokenName)
	if err != nil {
		return err
	}
	if token.Value != keyword {
		return unexpected(token, strconv.Quote(keyword))
	}
	return nil
}

// expectToken - is a helper function that ensures that the next token is the one we expected.
func (p *Parser) expectToken(tokenType lexer.TokenType) (token lexer.Token, err error) {
	token, err = p.lexer.Next()

	if err != nil {
		return lexer.UnknownToken, err
	}

	if token.Typ == tokenType {
		return token, nil
	}

	return lexer.UnknownToken, unexpected(token, tokenType.String())
}

func unexpected(token lexer.Token, want string) error {
	given := token.Typ.String()
	if token.Value != "" {
		given = fmt.Sprintf("%s %q", given, token.Value)
	}
	return fmt.Errorf("%w: expected: %s, given %s at %s", ErrTokenNotExpected, want, given, token.Location.String())
}

func reserved(name string) bool {
	switch name {
	case keywordWhile, keywordIf, keywordElse, keywordTrue, keywordFalse, keywordDoNothing:
		return true
	}
	return false
}
