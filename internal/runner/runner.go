// Package runner executes rendered denotations. It is the
// "run this program text under this environment" service that
// renderer output is checked against.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fuale/meaning/internal/printer"
	"github.com/fuale/meaning/internal/runner/sexpr"
)

var (
	ErrNoExecutor = errors.New("no executor for target")
	ErrExecution  = errors.New("execution failed")
)

// Value is what a program produces: int64, bool, or an Env for statements.
type Value = any

// Env maps variable names to values. Keys are always strings, whatever
// the target calls them.
type Env = map[string]Value

// Executor runs a rendered program against an environment.
type Executor interface {
	Run(ctx context.Context, program string, env Env) (Value, error)
}

// For picks the executor that understands target's output.
func For(target printer.Target) (Executor, error) {
	switch target {
	case printer.Clojure:
		return &Evaluator{}, nil
	case printer.JavaScript, printer.Ruby, printer.Python:
		return &Subprocess{Target: target}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoExecutor, string(target))
}

// Evaluator runs Clojure renderings in process.
// It records Rounds, so it is not safe for concurrent use.
type Evaluator struct {
	// MaxRounds caps loop rounds per run, zero meaning no cap.
	MaxRounds int
	// Rounds is how many loop rounds the last run took.
	Rounds int
}

func (ev *Evaluator) Run(ctx context.Context, program string, env Env) (Value, error) {
	m := sexpr.New()
	m.MaxRecurs = ev.MaxRounds

	v, err := m.Run(ctx, program, sexpr.Map(env))
	ev.Rounds = m.Recurs
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	return v, nil
}

// Format prints a value the way the REPL and error messages show it,
// with environments sorted by key.
func Format(v Value) string {
	env, ok := v.(Env)
	if !ok {
		return fmt.Sprintf("%v", v)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, Format(env[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
