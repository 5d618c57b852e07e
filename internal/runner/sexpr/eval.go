package sexpr

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnbound     = errors.New("unbound symbol")
	ErrType        = errors.New("type error")
	ErrArity       = errors.New("wrong number of arguments")
	ErrRecur       = errors.New("recur outside tail position")
	ErrRecurLimit  = errors.New("recur limit exceeded")
	ErrNotCallable = errors.New("not callable")
)

// Map is the only map kind there is: keys are always strings.
type Map = map[string]any

// Fn is a closure produced by evaluating an fn form.
type Fn struct {
	name   Symbol
	params []Symbol
	body   []any
	scope  *scope
}

type builtin func(args []any) (any, error)

// recurSignal travels up from a recur form to the fn or loop that
// owns it, which rebinds its parameters and goes round again instead of
// calling itself. The Go stack stays flat however long the loop runs.
type recurSignal struct {
	args []any
}

type scope struct {
	vars  map[Symbol]any
	outer *scope
}

func (s *scope) child() *scope {
	return &scope{vars: make(map[Symbol]any), outer: s}
}

func (s *scope) lookup(name Symbol) (any, error) {
	for c := s; c != nil; c = c.outer {
		if v, ok := c.vars[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnbound, name)
}

// Machine evaluates forms. It is not safe for concurrent use:
// Recurs counts rounds across everything it has run.
type Machine struct {
	// MaxRecurs caps the total number of recur rounds, zero meaning no cap.
	MaxRecurs int
	// Recurs is the number of recur rounds taken so far.
	Recurs int

	ctx     context.Context
	globals *scope
}

func New() *Machine {
	m := &Machine{globals: &scope{vars: make(map[Symbol]any)}}
	for name, fn := range builtins {
		m.globals.vars[name] = fn
	}
	return m
}

// Run reads program, evaluates it to a function and calls it with args.
func (m *Machine) Run(ctx context.Context, program string, args ...any) (any, error) {
	form, err := Read(program)
	if err != nil {
		return nil, err
	}

	m.ctx = ctx
	defer func() { m.ctx = nil }()

	fn, err := m.eval(form, m.globals)
	if err != nil {
		return nil, err
	}
	return m.apply(fn, args)
}

func (m *Machine) eval(form any, s *scope) (any, error) {
	switch f := form.(type) {
	case Symbol:
		return s.lookup(f)
	case Vector:
		items, err := m.evalArgs(f, s)
		return Vector(items), err
	case List:
		if len(f) == 0 {
			return f, nil
		}
		if head, ok := f[0].(Symbol); ok {
			switch head {
			case "fn":
				return m.evalFn(f, s)
			case "if":
				return m.evalIf(f, s)
			case "loop":
				return m.evalLoop(f, s)
			case "recur":
				args, err := m.evalArgs(f[1:], s)
				if err != nil {
					return nil, err
				}
				return &recurSignal{args: args}, nil
			}
		}

		callee, err := m.value(f[0], s)
		if err != nil {
			return nil, err
		}
		args, err := m.evalArgs(f[1:], s)
		if err != nil {
			return nil, err
		}
		return m.apply(callee, args)
	}

	// Everything else evaluates to itself.
	return form, nil
}

// value is eval for positions where a recur must not appear.
func (m *Machine) value(form any, s *scope) (any, error) {
	v, err := m.eval(form, s)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(*recurSignal); ok {
		return nil, ErrRecur
	}
	return v, nil
}

func (m *Machine) evalArgs(forms []any, s *scope) ([]any, error) {
	args := make([]any, len(forms))
	for i, f := range forms {
		v, err := m.value(f, s)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// evalBody evaluates forms in order; only the last may recur.
func (m *Machine) evalBody(body []any, s *scope) (any, error) {
	var result any
	for i, f := range body {
		var err error
		if i == len(body)-1 {
			result, err = m.eval(f, s)
		} else {
			_, err = m.value(f, s)
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// (fn name? [params*] body*)
func (m *Machine) evalFn(f List, s *scope) (any, error) {
	rest := f[1:]
	fn := &Fn{scope: s}

	if len(rest) > 0 {
		if name, ok := rest[0].(Symbol); ok {
			fn.name = name
			rest = rest[1:]
		}
	}

	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: fn without parameter vector", ErrSyntax)
	}
	params, ok := rest[0].(Vector)
	if !ok {
		return nil, fmt.Errorf("%w: fn parameters must be a vector", ErrSyntax)
	}
	for _, p := range params {
		sym, ok := p.(Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: fn parameter %v is not a symbol", ErrSyntax, p)
		}
		fn.params = append(fn.params, sym)
	}
	fn.body = rest[1:]

	return fn, nil
}

// (if test then else?)
func (m *Machine) evalIf(f List, s *scope) (any, error) {
	if len(f) != 3 && len(f) != 4 {
		return nil, fmt.Errorf("%w: if takes 2 or 3 forms, given %d", ErrSyntax, len(f)-1)
	}

	test, err := m.value(f[1], s)
	if err != nil {
		return nil, err
	}

	if truthy(test) {
		return m.eval(f[2], s)
	}
	if len(f) == 4 {
		return m.eval(f[3], s)
	}
	return nil, nil
}

// (loop [name init ...] body*)
func (m *Machine) evalLoop(f List, s *scope) (any, error) {
	if len(f) < 2 {
		return nil, fmt.Errorf("%w: loop without bindings", ErrSyntax)
	}
	bindings, ok := f[1].(Vector)
	if !ok || len(bindings)%2 != 0 {
		return nil, fmt.Errorf("%w: loop bindings must be a vector of pairs", ErrSyntax)
	}

	inner := s.child()
	names := make([]Symbol, 0, len(bindings)/2)
	for i := 0; i < len(bindings); i += 2 {
		name, ok := bindings[i].(Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: loop binding %v is not a symbol", ErrSyntax, bindings[i])
		}
		v, err := m.value(bindings[i+1], inner)
		if err != nil {
			return nil, err
		}
		inner.vars[name] = v
		names = append(names, name)
	}

	for {
		v, err := m.evalBody(f[2:], inner)
		if err != nil {
			return nil, err
		}
		r, ok := v.(*recurSignal)
		if !ok {
			return v, nil
		}
		if err := m.round(len(names), r); err != nil {
			return nil, err
		}
		inner = s.child()
		for i, name := range names {
			inner.vars[name] = r.args[i]
		}
	}
}

func (m *Machine) apply(callee any, args []any) (any, error) {
	switch fn := callee.(type) {
	case builtin:
		return fn(args)
	case *Fn:
		for {
			if len(args) != len(fn.params) {
				return nil, fmt.Errorf("%w: %s takes %d, given %d", ErrArity, fn, len(fn.params), len(args))
			}

			inner := fn.scope.child()
			if fn.name != "" {
				inner.vars[fn.name] = fn
			}
			for i, p := range fn.params {
				inner.vars[p] = args[i]
			}

			v, err := m.evalBody(fn.body, inner)
			if err != nil {
				return nil, err
			}
			r, ok := v.(*recurSignal)
			if !ok {
				return v, nil
			}
			if err := m.round(len(fn.params), r); err != nil {
				return nil, err
			}
			args = r.args
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrNotCallable, callee)
}

// round books one recur round and checks it can go ahead.
func (m *Machine) round(arity int, r *recurSignal) error {
	if len(r.args) != arity {
		return fmt.Errorf("%w: recur takes %d, given %d", ErrArity, arity, len(r.args))
	}

	m.Recurs++
	if m.MaxRecurs > 0 && m.Recurs > m.MaxRecurs {
		return fmt.Errorf("%w: %d", ErrRecurLimit, m.MaxRecurs)
	}
	if m.ctx != nil {
		if err := m.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fn) String() string {
	if f.name != "" {
		return fmt.Sprintf("fn %s", f.name)
	}
	return "fn"
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}
