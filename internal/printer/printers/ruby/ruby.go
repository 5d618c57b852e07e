// Package ruby renders denotations as Ruby lambdas.
//
// Environments are hashes with string keys; assignment merges into a
// fresh hash and while loops rebind the block-local `e`.
package ruby

import (
	"fmt"
	"strconv"
)

type Printer struct{}

func (Printer) Extension() string { return ".rb" }
func (Printer) Param() string     { return "e" }

func (Printer) Function(body string) string {
	return fmt.Sprintf("-> e { %s }", body)
}

func (Printer) Apply(fn, arg string) string {
	return fmt.Sprintf("(%s).call(%s)", fn, arg)
}

func (Printer) Integer(n int64) string { return strconv.FormatInt(n, 10) }
func (Printer) Boolean(b bool) string  { return strconv.FormatBool(b) }

func (Printer) Add(left, right string) string      { return left + " + " + right }
func (Printer) Multiply(left, right string) string { return left + " * " + right }
func (Printer) LessThan(left, right string) string { return left + " < " + right }

func (Printer) Lookup(env, name string) string {
	return fmt.Sprintf("%s[%s]", env, strconv.Quote(name))
}

func (Printer) Replace(env, name, value string) string {
	return fmt.Sprintf("%s.merge({ %s => %s })", env, strconv.Quote(name), value)
}

func (Printer) Conditional(condition, consequence, alternative string) string {
	return fmt.Sprintf("-> e { if %s then %s else %s end }", condition, consequence, alternative)
}

func (Printer) Loop(condition, body string) string {
	return fmt.Sprintf("-> e { while %s; e = %s; end; e }", condition, body)
}
