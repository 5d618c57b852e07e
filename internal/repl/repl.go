// Package repl is an interactive front end: each line of Simple is
// rendered for the selected targets and then evaluated against a session
// environment that statements carry forward.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/fuale/meaning/internal"
	"github.com/fuale/meaning/internal/parser"
	"github.com/fuale/meaning/internal/printer"
	"github.com/fuale/meaning/internal/runner"
)

const PROMPT = ">> "

var completionWords = []string{
	"while", "if", "else", "do-nothing", "true", "false",
	":targets", ":env", ":reset", ":ast", ":help", "exit",
}

// Session is the state one REPL carries between lines.
type Session struct {
	Targets []printer.Target
	Env     runner.Env
	// MaxRounds caps loop rounds per line.
	MaxRounds int
	// ShowAST dumps each parsed tree before rendering it.
	ShowAST bool
}

func NewSession(targets []printer.Target, env runner.Env, maxRounds int) *Session {
	if env == nil {
		env = runner.Env{}
	}
	return &Session{Targets: targets, Env: env, MaxRounds: maxRounds}
}

// Start runs the REPL until EOF or exit.
func Start(out io.Writer, s *Session) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		return filterCompletions(l)
	})

	historyFile := filepath.Join(os.TempDir(), ".denote_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "Simple, denotationally. Type ':help' for commands, Ctrl+D to quit.")

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out)
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return
		}
		line.AppendHistory(input)

		s.Eval(context.Background(), out, trimmed)
	}
}

// Eval handles one line: either a command or a Simple program.
func (s *Session) Eval(ctx context.Context, out io.Writer, input string) {
	if strings.HasPrefix(input, ":") {
		s.command(out, input)
		return
	}

	node, err := parser.ParseAny(input)
	if err != nil {
		fmt.Fprintf(out, "parse error: %v\n", err)
		return
	}

	if s.ShowAST {
		internal.WriteBlock(out, "AST", internal.Dump(node))
	}

	texts, err := printer.New(node).PrintAll(s.Targets)
	if err != nil {
		fmt.Fprintf(out, "render error: %v\n", err)
		return
	}
	for _, t := range s.Targets {
		fmt.Fprintf(out, "%s: %s\n", t, texts[t])
	}

	// Clojure renderings run in process, so they are what gets evaluated,
	// whatever targets are being shown.
	program, err := printer.Render(node, printer.Clojure)
	if err != nil {
		fmt.Fprintf(out, "render error: %v\n", err)
		return
	}
	ev := &runner.Evaluator{MaxRounds: s.MaxRounds}
	v, err := ev.Run(ctx, program, s.Env)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	if env, ok := v.(runner.Env); ok {
		s.Env = env
	}
	fmt.Fprintf(out, "=> %s\n", runner.Format(v))
}

func (s *Session) command(out io.Writer, input string) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":help":
		fmt.Fprintln(out, "  :targets [t,...]  show or set targets ("+targetNames()+")")
		fmt.Fprintln(out, "  :env              show the session environment")
		fmt.Fprintln(out, "  :reset            empty the session environment")
		fmt.Fprintln(out, "  :ast              toggle AST dumps")
	case ":targets":
		if len(fields) == 1 {
			fmt.Fprintln(out, joinTargets(s.Targets))
			return
		}
		targets, err := ParseTargets(strings.Join(fields[1:], ","))
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		s.Targets = targets
	case ":env":
		fmt.Fprintln(out, runner.Format(s.Env))
	case ":reset":
		s.Env = runner.Env{}
	case ":ast":
		s.ShowAST = !s.ShowAST
	default:
		fmt.Fprintf(out, "unknown command %s, try :help\n", fields[0])
	}
}

// ParseTargets reads a comma separated target list.
func ParseTargets(list string) ([]printer.Target, error) {
	var targets []printer.Target
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := printer.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func joinTargets(targets []printer.Target) string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

func targetNames() string {
	return joinTargets(printer.Targets())
}

// filterCompletions completes the last word of the line.
func filterCompletions(line string) []string {
	start := strings.LastIndexAny(line, " (){};") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var out []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, word) {
			out = append(out, prefix+w)
		}
	}
	return out
}
