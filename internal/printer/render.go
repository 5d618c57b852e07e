package printer

import (
	"fmt"

	"github.com/fuale/meaning/internal/parser"
)

// Render returns the denotation of node in target's syntax: a closure
// from an environment to a value for expressions, and from an
// environment to an environment for statements.
//
// Nothing is evaluated. Every child is rendered as a closure of its own
// and applied to the environment in place, so any subtree's text can be
// lifted out and run by itself. On error no text is returned.
func Render(node parser.Node, target Target) (string, error) {
	s, err := SyntaxFor(target)
	if err != nil {
		return "", err
	}

	r := renderer{s}
	return r.node(node)
}

type renderer struct {
	Syntax
}

func (r renderer) node(n parser.Node) (string, error) {
	switch n := n.(type) {
	case parser.Expression:
		return r.expression(n)
	case parser.Statement:
		return r.statement(n)
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownVariant, n)
}

// applied renders e and applies it to the environment parameter.
func (r renderer) applied(e parser.Expression) (string, error) {
	text, err := r.expression(e)
	if err != nil {
		return "", err
	}
	return r.Apply(text, r.Param()), nil
}

func (r renderer) appliedStatement(s parser.Statement) (string, error) {
	text, err := r.statement(s)
	if err != nil {
		return "", err
	}
	return r.Apply(text, r.Param()), nil
}

// binary renders both operands, left first, and combines them with op.
func (r renderer) binary(left, right parser.Expression, op func(string, string) string) (string, error) {
	l, err := r.applied(left)
	if err != nil {
		return "", err
	}
	rt, err := r.applied(right)
	if err != nil {
		return "", err
	}
	return r.Function(op(l, rt)), nil
}

func (r renderer) expression(e parser.Expression) (string, error) {
	switch e := e.(type) {
	case parser.Variable:
		return r.Function(r.Lookup(r.Param(), e.Name)), nil
	case parser.Number:
		return r.Function(r.Integer(e.Value)), nil
	case parser.Boolean:
		return r.Function(r.Boolean(e.Value)), nil
	case parser.Add:
		return r.binary(e.Left, e.Right, r.Add)
	case parser.Multiply:
		return r.binary(e.Left, e.Right, r.Multiply)
	case parser.LessThan:
		return r.binary(e.Left, e.Right, r.LessThan)
	}
	return "", fmt.Errorf("%w: expression %T", ErrUnknownVariant, e)
}

func (r renderer) statement(s parser.Statement) (string, error) {
	switch s := s.(type) {
	case parser.DoNothing:
		return r.Function(r.Param()), nil

	case parser.Assign:
		value, err := r.applied(s.Value)
		if err != nil {
			return "", err
		}
		return r.Function(r.Replace(r.Param(), s.Name, value)), nil

	case parser.Sequence:
		// The second statement sees whatever the first one returned.
		first, err := r.appliedStatement(s.First)
		if err != nil {
			return "", err
		}
		second, err := r.statement(s.Second)
		if err != nil {
			return "", err
		}
		return r.Function(r.Apply(second, first)), nil

	case parser.If:
		condition, err := r.applied(s.Condition)
		if err != nil {
			return "", err
		}
		consequence, err := r.appliedStatement(s.Consequence)
		if err != nil {
			return "", err
		}
		alternative, err := r.appliedStatement(s.Alternative)
		if err != nil {
			return "", err
		}
		return r.Conditional(condition, consequence, alternative), nil

	case parser.While:
		// One construct regardless of how many rounds the program takes:
		// repetition is left to the target.
		condition, err := r.applied(s.Condition)
		if err != nil {
			return "", err
		}
		body, err := r.appliedStatement(s.Body)
		if err != nil {
			return "", err
		}
		return r.Loop(condition, body), nil
	}
	return "", fmt.Errorf("%w: statement %T", ErrUnknownVariant, s)
}
