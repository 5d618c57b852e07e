package runner

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/fuale/meaning/internal/parser"
	"github.com/fuale/meaning/internal/printer"
)

type meaning struct {
	name string
	node parser.Node
	env  Env
	want Value
}

var (
	x = parser.Variable{Name: "x"}
	y = parser.Variable{Name: "y"}
)

func num(n int64) parser.Number { return parser.Number{Value: n} }

var meanings = []meaning{
	{"variable", x, Env{"x": int64(42)}, int64(42)},
	{"number", num(42), Env{}, int64(42)},
	{"number ignores environment", num(42), Env{"x": int64(1)}, int64(42)},
	{"true", parser.Boolean{Value: true}, Env{}, true},
	{"false", parser.Boolean{Value: false}, Env{}, false},
	{"add", parser.Add{Left: num(1), Right: num(2)}, Env{}, int64(3)},
	{"multiply", parser.Multiply{Left: num(2), Right: num(3)}, Env{}, int64(6)},
	{"less than", parser.LessThan{Left: num(1), Right: num(2)}, Env{}, true},
	{"not less than", parser.LessThan{Left: num(2), Right: num(2)}, Env{}, false},
	{"variables in arithmetic", parser.Add{Left: x, Right: parser.Multiply{Left: y, Right: num(2)}}, Env{"x": int64(1), "y": int64(4)}, int64(9)},
	{"do-nothing", parser.DoNothing{}, Env{"x": int64(1)}, Env{"x": int64(1)}},
	{
		"assign",
		parser.Assign{Name: "x", Value: num(5)},
		Env{"x": int64(1), "y": int64(2)},
		Env{"x": int64(5), "y": int64(2)},
	},
	{
		"assign reads old environment",
		parser.Assign{Name: "x", Value: parser.Add{Left: x, Right: num(1)}},
		Env{"x": int64(1)},
		Env{"x": int64(2)},
	},
	{
		"sequence",
		parser.Sequence{First: parser.Assign{Name: "x", Value: num(1)}, Second: parser.Assign{Name: "x", Value: num(2)}},
		Env{"y": int64(3)},
		Env{"x": int64(2), "y": int64(3)},
	},
	{
		"sequence threads environment",
		parser.Sequence{First: parser.Assign{Name: "x", Value: num(2)}, Second: parser.Assign{Name: "y", Value: parser.Multiply{Left: x, Right: x}}},
		Env{},
		Env{"x": int64(2), "y": int64(4)},
	},
	{
		"if true",
		parser.If{Condition: parser.LessThan{Left: x, Right: num(5)}, Consequence: parser.Assign{Name: "y", Value: num(1)}, Alternative: parser.Assign{Name: "y", Value: num(2)}},
		Env{"x": int64(3)},
		Env{"x": int64(3), "y": int64(1)},
	},
	{
		"if false",
		parser.If{Condition: parser.LessThan{Left: x, Right: num(5)}, Consequence: parser.Assign{Name: "y", Value: num(1)}, Alternative: parser.Assign{Name: "y", Value: num(2)}},
		Env{"x": int64(7)},
		Env{"x": int64(7), "y": int64(2)},
	},
	{
		"while",
		parser.While{
			Condition: parser.LessThan{Left: x, Right: num(5)},
			Body:      parser.Assign{Name: "x", Value: parser.Multiply{Left: x, Right: num(3)}},
		},
		Env{"x": int64(1)},
		Env{"x": int64(9)},
	},
	{
		"while never entered",
		parser.While{Condition: parser.Boolean{Value: false}, Body: parser.Assign{Name: "x", Value: num(0)}},
		Env{"x": int64(1)},
		Env{"x": int64(1)},
	},
}

func TestEvaluatorMeanings(t *testing.T) {
	for _, m := range meanings {
		t.Run(m.name, func(t *testing.T) {
			checkMeaning(t, &Evaluator{MaxRounds: 1000}, printer.Clojure, m)
		})
	}
}

func TestSubprocessMeanings(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns interpreters")
	}

	for _, target := range []printer.Target{printer.JavaScript, printer.Ruby, printer.Python} {
		sp := &Subprocess{Target: target}
		if !sp.Available() {
			t.Logf("%s: interpreter not on PATH, skipping", target)
			continue
		}
		for _, m := range meanings {
			t.Run(string(target)+"/"+m.name, func(t *testing.T) {
				checkMeaning(t, sp, target, m)
			})
		}
	}
}

func checkMeaning(t *testing.T, ex Executor, target printer.Target, m meaning) {
	t.Helper()

	program, err := printer.Render(m.node, target)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	got, err := ex.Run(ctx, program, m.env)
	if err != nil {
		t.Fatalf("%s\n%s: %v", m.node, program, err)
	}
	if !reflect.DeepEqual(got, m.want) {
		t.Errorf("%s within %s\n got: %s\nwant: %s\nprogram: %s", m.node, Format(m.env), spew.Sdump(got), spew.Sdump(m.want), program)
	}
}

// 1 -> 3 -> 9: the loop body runs exactly twice.
func TestWhileTakesExactRounds(t *testing.T) {
	node, err := parser.ParseStatement("while (x < 5) { x = x * 3 }")
	if err != nil {
		t.Fatal(err)
	}
	program, err := printer.Render(node, printer.Clojure)
	if err != nil {
		t.Fatal(err)
	}

	ev := &Evaluator{MaxRounds: 10}
	got, err := ev.Run(context.Background(), program, Env{"x": int64(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, Env{"x": int64(9)}) {
		t.Errorf("got %s", Format(got))
	}
	if ev.Rounds != 2 {
		t.Errorf("took %d rounds, want 2", ev.Rounds)
	}
}

func TestWhileLongLoop(t *testing.T) {
	node, err := parser.ParseStatement("i = 0; while (i < 200000) { i = i + 1 }")
	if err != nil {
		t.Fatal(err)
	}
	program, err := printer.Render(node, printer.Clojure)
	if err != nil {
		t.Fatal(err)
	}

	got, err := (&Evaluator{}).Run(context.Background(), program, Env{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, Env{"i": int64(200000)}) {
		t.Errorf("got %s", Format(got))
	}
}

func TestInfiniteLoopHitsLimit(t *testing.T) {
	program, err := printer.Render(parser.While{Condition: parser.Boolean{Value: true}, Body: parser.DoNothing{}}, printer.Clojure)
	if err != nil {
		t.Fatal(err)
	}

	_, err = (&Evaluator{MaxRounds: 100}).Run(context.Background(), program, Env{})
	if !errors.Is(err, ErrExecution) {
		t.Errorf("expected ErrExecution, got %v", err)
	}
}

func TestAssignDoesNotTouchInput(t *testing.T) {
	program, err := printer.Render(parser.Assign{Name: "x", Value: num(5)}, printer.Clojure)
	if err != nil {
		t.Fatal(err)
	}

	env := Env{"x": int64(1)}
	if _, err := (&Evaluator{}).Run(context.Background(), program, env); err != nil {
		t.Fatal(err)
	}
	if env["x"] != int64(1) {
		t.Errorf("input environment changed to %s", Format(env))
	}
}

func TestFor(t *testing.T) {
	for _, target := range printer.Targets() {
		if _, err := For(target); err != nil {
			t.Errorf("%s: %v", target, err)
		}
	}
	if _, err := For("cobol"); !errors.Is(err, ErrNoExecutor) {
		t.Errorf("expected ErrNoExecutor, got %v", err)
	}
}

func TestSubprocessMissingInterpreter(t *testing.T) {
	sp := &Subprocess{Target: printer.JavaScript, Command: "definitely-not-an-interpreter"}
	if sp.Available() {
		t.Fatal("expected interpreter to be missing")
	}
	_, err := sp.Run(context.Background(), "function (e) { return 1; }", Env{})
	if !errors.Is(err, ErrNoInterpreter) {
		t.Errorf("expected ErrNoInterpreter, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	got, err := decode([]byte(`{"x": 9, "ok": true, "inner": {"n": -3}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := Env{"x": int64(9), "ok": true, "inner": Env{"n": int64(-3)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %s", spew.Sdump(got))
	}

	if _, err := decode([]byte(`1.5`)); !errors.Is(err, ErrExecution) {
		t.Errorf("expected ErrExecution, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(Env{"y": int64(2), "x": true}); got != "{x: true, y: 2}" {
		t.Errorf("got %s", got)
	}
	if got := Format(int64(3)); got != "3" {
		t.Errorf("got %s", got)
	}
}
