// Package javascript renders denotations as JavaScript function expressions.
//
// Environments are plain objects keyed by variable name. Assignment copies
// the object with Object.assign, and while loops reassign the local `e`
// on every round of a native while statement.
package javascript

import (
	"fmt"
	"strconv"
)

type Printer struct{}

func (Printer) Extension() string { return ".js" }
func (Printer) Param() string     { return "e" }

func (Printer) Function(body string) string {
	return fmt.Sprintf("function (e) { return %s; }", body)
}

func (Printer) Apply(fn, arg string) string {
	return fmt.Sprintf("%s(%s)", fn, arg)
}

func (Printer) Integer(n int64) string { return strconv.FormatInt(n, 10) }
func (Printer) Boolean(b bool) string  { return strconv.FormatBool(b) }

func (Printer) Add(left, right string) string      { return fmt.Sprintf("(%s) + (%s)", left, right) }
func (Printer) Multiply(left, right string) string { return fmt.Sprintf("(%s) * (%s)", left, right) }
func (Printer) LessThan(left, right string) string { return fmt.Sprintf("(%s) < (%s)", left, right) }

func (Printer) Lookup(env, name string) string {
	return fmt.Sprintf("%s[%s]", env, strconv.Quote(name))
}

func (Printer) Replace(env, name, value string) string {
	return fmt.Sprintf("Object.assign({}, %s, { %s: %s })", env, strconv.Quote(name), value)
}

func (Printer) Conditional(condition, consequence, alternative string) string {
	return fmt.Sprintf("function (e) { if (%s) { return (%s); } else { return (%s); } }", condition, consequence, alternative)
}

func (Printer) Loop(condition, body string) string {
	return fmt.Sprintf("function (e) { while (%s) { e = %s; } return e; }", condition, body)
}
