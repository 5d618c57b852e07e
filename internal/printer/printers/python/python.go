// Package python renders denotations as Python lambdas.
//
// A lambda holds a single expression, so there is no while statement to
// reach for. Loops are an itertools.accumulate stream of environments,
// each one the body applied to the last, cut at the first environment
// the condition rejects. That iterates; it never recurses.
package python

import (
	"fmt"
	"strconv"
)

type Printer struct{}

func (Printer) Extension() string { return ".py" }
func (Printer) Param() string     { return "e" }

func (Printer) Function(body string) string {
	return fmt.Sprintf("lambda e: %s", body)
}

// Lambdas bind looser than calls, hence the brackets.
func (Printer) Apply(fn, arg string) string {
	return fmt.Sprintf("(%s)(%s)", fn, arg)
}

func (Printer) Integer(n int64) string { return strconv.FormatInt(n, 10) }

func (Printer) Boolean(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func (Printer) Add(left, right string) string      { return left + " + " + right }
func (Printer) Multiply(left, right string) string { return left + " * " + right }
func (Printer) LessThan(left, right string) string { return left + " < " + right }

func (Printer) Lookup(env, name string) string {
	return fmt.Sprintf("%s[%s]", env, strconv.Quote(name))
}

func (Printer) Replace(env, name, value string) string {
	return fmt.Sprintf("{**%s, %s: %s}", env, strconv.Quote(name), value)
}

func (Printer) Conditional(condition, consequence, alternative string) string {
	return fmt.Sprintf("lambda e: %s if %s else %s", consequence, condition, alternative)
}

const itertools = `__import__("itertools")`

func (Printer) Loop(condition, body string) string {
	return fmt.Sprintf(
		"lambda e: next(e for e in %s.accumulate(%s.repeat(None), lambda e, _: %s, initial=e) if not %s)",
		itertools, itertools, body, condition,
	)
}
