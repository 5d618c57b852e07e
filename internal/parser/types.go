package parser

import (
	"fmt"
	"strconv"
)

// Node is anything the parser produces. String renders the node
// back in Simple syntax, which is handy for debugging.
type Node interface {
	String() string
}

// Go's type system not allowing sum types,
// so expressions and statements are told apart by a dummy method.
type Expression interface {
	Node
	IsExpression() bool
}

type Statement interface {
	Node
	// Same here
	IsStatement() bool
}

// Expression, that references a variable
type Variable struct {
	Name string
}

// Expression, that represent literal number
type Number struct {
	Value int64
}

// Expression, that represent literal boolean
type Boolean struct {
	Value bool
}

type Add struct {
	Left  Expression
	Right Expression
}

type Multiply struct {
	Left  Expression
	Right Expression
}

type LessThan struct {
	Left  Expression
	Right Expression
}

// Implementing interface
func (Variable) IsExpression() bool { return true }
func (Number) IsExpression() bool   { return true }
func (Boolean) IsExpression() bool  { return true }
func (Add) IsExpression() bool      { return true }
func (Multiply) IsExpression() bool { return true }
func (LessThan) IsExpression() bool { return true }

func (v Variable) String() string { return v.Name }
func (n Number) String() string   { return strconv.FormatInt(n.Value, 10) }
func (b Boolean) String() string  { return strconv.FormatBool(b.Value) }

func (a Add) String() string {
	return operand(a.Left, precAdd+1) + " + " + operand(a.Right, precAdd)
}

func (m Multiply) String() string {
	return operand(m.Left, precMultiply+1) + " * " + operand(m.Right, precMultiply)
}

func (l LessThan) String() string {
	return operand(l.Left, precLessThan+1) + " < " + operand(l.Right, precLessThan)
}

// Binding strength of each expression, loosest first.
// The grammar nests to the right, so a left operand
// of equal strength needs brackets and a right one doesn't.
const (
	precLessThan = iota + 1
	precAdd
	precMultiply
	precTerm
)

func precedence(e Expression) int {
	switch e.(type) {
	case LessThan:
		return precLessThan
	case Add:
		return precAdd
	case Multiply:
		return precMultiply
	default:
		return precTerm
	}
}

func operand(e Expression, floor int) string {
	if precedence(e) < floor {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Statement, that leaves the environment untouched
type DoNothing struct{}

// Statement, that rebinds Name to the value of an expression
type Assign struct {
	Name  string
	Value Expression
}

// Sequence runs First, then Second against whatever First left behind.
type Sequence struct {
	First  Statement
	Second Statement
}

type If struct {
	Condition   Expression
	Consequence Statement
	Alternative Statement
}

type While struct {
	Condition Expression
	Body      Statement
}

func (DoNothing) IsStatement() bool { return true }
func (Assign) IsStatement() bool    { return true }
func (Sequence) IsStatement() bool  { return true }
func (If) IsStatement() bool        { return true }
func (While) IsStatement() bool     { return true }

func (DoNothing) String() string  { return "do-nothing" }
func (a Assign) String() string   { return fmt.Sprintf("%s = %s", a.Name, a.Value) }
func (s Sequence) String() string { return fmt.Sprintf("%s; %s", s.First, s.Second) }

func (i If) String() string {
	return fmt.Sprintf("if (%s) { %s } else { %s }", i.Condition, i.Consequence, i.Alternative)
}

func (w While) String() string {
	return fmt.Sprintf("while (%s) { %s }", w.Condition, w.Body)
}
