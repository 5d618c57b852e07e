// Package clojure renders denotations as Clojure fn forms.
//
// Environments are persistent maps with string keys, so assoc already
// leaves the original alone. Clojure has no loop statement: a while is an
// fn whose true branch recurs into itself with the new environment.
// recur is a tail call and does not grow the stack.
package clojure

import (
	"fmt"
	"strconv"
)

type Printer struct{}

func (Printer) Extension() string { return ".clj" }
func (Printer) Param() string     { return "e" }

func (Printer) Function(body string) string {
	return fmt.Sprintf("(fn [e] %s)", body)
}

func (Printer) Apply(fn, arg string) string {
	return fmt.Sprintf("(%s %s)", fn, arg)
}

func (Printer) Integer(n int64) string { return strconv.FormatInt(n, 10) }
func (Printer) Boolean(b bool) string  { return strconv.FormatBool(b) }

func (Printer) Add(left, right string) string      { return fmt.Sprintf("(+ %s %s)", left, right) }
func (Printer) Multiply(left, right string) string { return fmt.Sprintf("(* %s %s)", left, right) }
func (Printer) LessThan(left, right string) string { return fmt.Sprintf("(< %s %s)", left, right) }

func (Printer) Lookup(env, name string) string {
	return fmt.Sprintf("(get %s %s)", env, strconv.Quote(name))
}

func (Printer) Replace(env, name, value string) string {
	return fmt.Sprintf("(assoc %s %s %s)", env, strconv.Quote(name), value)
}

func (Printer) Conditional(condition, consequence, alternative string) string {
	return fmt.Sprintf("(fn [e] (if %s %s %s))", condition, consequence, alternative)
}

func (Printer) Loop(condition, body string) string {
	return fmt.Sprintf("(fn [e] (if %s (recur %s) e))", condition, body)
}
