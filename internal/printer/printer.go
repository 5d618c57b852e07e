package printer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fuale/meaning/internal/parser"
	"github.com/fuale/meaning/internal/printer/printers/clojure"
	"github.com/fuale/meaning/internal/printer/printers/javascript"
	"github.com/fuale/meaning/internal/printer/printers/python"
	"github.com/fuale/meaning/internal/printer/printers/ruby"
)

var (
	ErrUnsupportedTarget = errors.New("unsupported target")
	ErrUnknownVariant    = errors.New("unknown node variant")
)

// Target names a language the renderer can emit.
type Target string

const (
	JavaScript Target = "javascript"
	Ruby       Target = "ruby"
	Python     Target = "python"
	Clojure    Target = "clojure"
)

var syntaxes = map[Target]Syntax{
	JavaScript: javascript.Printer{},
	Ruby:       ruby.Printer{},
	Python:     python.Printer{},
	Clojure:    clojure.Printer{},
}

var aliases = map[string]Target{
	"js":  JavaScript,
	"rb":  Ruby,
	"py":  Python,
	"clj": Clojure,
}

// Targets lists every registered target, sorted by name.
func Targets() []Target {
	targets := make([]Target, 0, len(syntaxes))
	for t := range syntaxes {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// ParseTarget resolves a target name or its short alias.
func ParseTarget(name string) (Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	if _, ok := syntaxes[Target(name)]; ok {
		return Target(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTarget, name)
}

// SyntaxFor returns the rule set registered for t.
func SyntaxFor(t Target) (Syntax, error) {
	s, ok := syntaxes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTarget, string(t))
	}
	return s, nil
}

// Extension is the file extension of programs emitted for t.
func Extension(t Target) (string, error) {
	s, err := SyntaxFor(t)
	if err != nil {
		return "", err
	}
	return s.Extension(), nil
}

type Printer struct {
	Ast parser.Node
}

func New(ast parser.Node) *Printer {
	return &Printer{
		Ast: ast,
	}
}

func (p *Printer) Print(target Target) (string, error) {
	return Render(p.Ast, target)
}

// PrintAll renders the tree once per target, stopping at the first failure.
func (p *Printer) PrintAll(targets []Target) (map[Target]string, error) {
	out := make(map[Target]string, len(targets))
	for _, t := range targets {
		text, err := p.Print(t)
		if err != nil {
			return nil, err
		}
		out[t] = text
	}
	return out, nil
}
