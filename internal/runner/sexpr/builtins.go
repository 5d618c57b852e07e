package sexpr

import (
	"fmt"
)

var builtins = map[Symbol]builtin{
	"get":   get,
	"assoc": assoc,
	"+":     arithmetic("+", 0, func(a, b int64) int64 { return a + b }),
	"*":     arithmetic("*", 1, func(a, b int64) int64 { return a * b }),
	"<":     less,
}

// (get map key)
func get(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: get takes 2, given %d", ErrArity, len(args))
	}
	m, ok := args[0].(Map)
	if !ok {
		return nil, fmt.Errorf("%w: get from %T", ErrType, args[0])
	}
	key, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("%w: map key %T", ErrType, args[1])
	}
	return m[key], nil
}

// (assoc map key value ...) copies map, the original is never touched.
func assoc(args []any) (any, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return nil, fmt.Errorf("%w: assoc takes a map and key/value pairs, given %d", ErrArity, len(args))
	}
	m, ok := args[0].(Map)
	if !ok && args[0] != nil {
		return nil, fmt.Errorf("%w: assoc into %T", ErrType, args[0])
	}

	out := make(Map, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	for i := 1; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: map key %T", ErrType, args[i])
		}
		out[key] = args[i+1]
	}
	return out, nil
}

func arithmetic(name string, identity int64, op func(a, b int64) int64) builtin {
	return func(args []any) (any, error) {
		acc := identity
		for i, a := range args {
			n, ok := a.(int64)
			if !ok {
				return nil, fmt.Errorf("%w: %s argument %d is %T, not a number", ErrType, name, i+1, a)
			}
			if i == 0 {
				acc = n
				continue
			}
			acc = op(acc, n)
		}
		return acc, nil
	}
}

// (< a b ...) holds when the arguments strictly increase.
func less(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: < takes at least 1", ErrArity)
	}
	prev, ok := args[0].(int64)
	if !ok {
		return nil, fmt.Errorf("%w: < argument 1 is %T, not a number", ErrType, args[0])
	}
	for i, a := range args[1:] {
		n, ok := a.(int64)
		if !ok {
			return nil, fmt.Errorf("%w: < argument %d is %T, not a number", ErrType, i+2, a)
		}
		if !(prev < n) {
			return false, nil
		}
		prev = n
	}
	return true, nil
}
