// Package sexpr evaluates the small slice of Clojure that the renderer
// emits: fn, if, loop, recur, get, assoc, +, * and <, over integers,
// booleans, strings and string-keyed maps.
package sexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrSyntax = errors.New("syntax error")

// Symbol is a bare name in source text.
type Symbol string

// List is a parenthesised form, Vector a bracketed one.
type (
	List   []any
	Vector []any
)

// Read parses exactly one form out of src.
func Read(src string) (any, error) {
	r := &reader{src: []rune(src)}
	form, err := r.form()
	if err != nil {
		return nil, err
	}
	r.skip()
	if r.pos < len(r.src) {
		return nil, fmt.Errorf("%w: trailing input at offset %d", ErrSyntax, r.pos)
	}
	return form, nil
}

type reader struct {
	src []rune
	pos int
}

func (r *reader) skip() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case unicode.IsSpace(c) || c == ',':
			r.pos++
		case c == ';':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) form() (any, error) {
	r.skip()
	if r.pos >= len(r.src) {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}

	switch c := r.src[r.pos]; c {
	case '(':
		r.pos++
		items, err := r.seq(')')
		return List(items), err
	case '[':
		r.pos++
		items, err := r.seq(']')
		return Vector(items), err
	case ')', ']':
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, c, r.pos)
	case '"':
		return r.str()
	}

	return r.atom()
}

func (r *reader) seq(end rune) ([]any, error) {
	items := make([]any, 0)
	for {
		r.skip()
		if r.pos >= len(r.src) {
			return nil, fmt.Errorf("%w: missing %q", ErrSyntax, end)
		}
		if r.src[r.pos] == end {
			r.pos++
			return items, nil
		}
		f, err := r.form()
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
}

func (r *reader) str() (any, error) {
	start := r.pos
	r.pos++
	for r.pos < len(r.src) {
		switch r.src[r.pos] {
		case '\\':
			r.pos += 2
			continue
		case '"':
			r.pos++
			s, err := strconv.Unquote(string(r.src[start:r.pos]))
			if err != nil {
				return nil, fmt.Errorf("%w: bad string at offset %d: %v", ErrSyntax, start, err)
			}
			return s, nil
		}
		r.pos++
	}
	return nil, fmt.Errorf("%w: unterminated string at offset %d", ErrSyntax, start)
}

func (r *reader) atom() (any, error) {
	start := r.pos
	for r.pos < len(r.src) && !strings.ContainsRune("()[]\"; ,\t\r\n", r.src[r.pos]) {
		r.pos++
	}
	text := string(r.src[start:r.pos])

	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "nil":
		return nil, nil
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}

	return Symbol(text), nil
}
