package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func v(name string) Variable { return Variable{Name: name} }
func n(value int64) Number   { return Number{Value: value} }

func TestParseExpression(t *testing.T) {
	cases := []struct {
		src  string
		want Expression
	}{
		{"x", v("x")},
		{"42", n(42)},
		{"true", Boolean{Value: true}},
		{"false", Boolean{Value: false}},
		{"1 + 2", Add{n(1), n(2)}},
		{"2 * 3", Multiply{n(2), n(3)}},
		{"1 < 2", LessThan{n(1), n(2)}},
		{"1 + 2 * 3", Add{n(1), Multiply{n(2), n(3)}}},
		{"1 * 2 + 3", Add{Multiply{n(1), n(2)}, n(3)}},
		{"(1 + 2) * 3", Multiply{Add{n(1), n(2)}, n(3)}},
		{"a + b + c", Add{v("a"), Add{v("b"), v("c")}}},
		{"x + 1 < y * 2", LessThan{Add{v("x"), n(1)}, Multiply{v("y"), n(2)}}},
		{"  x1  ", v("x1")},
	}

	for _, c := range cases {
		got, err := ParseExpression(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%q:\n got: %s\nwant: %s", c.src, spew.Sdump(got), spew.Sdump(c.want))
		}
	}
}

func TestParseStatement(t *testing.T) {
	cases := []struct {
		src  string
		want Statement
	}{
		{"do-nothing", DoNothing{}},
		{"x = 5", Assign{"x", n(5)}},
		{"x = 1; x = 2", Sequence{Assign{"x", n(1)}, Assign{"x", n(2)}}},
		{"a = 1; b = 2; c = 3", Sequence{Assign{"a", n(1)}, Sequence{Assign{"b", n(2)}, Assign{"c", n(3)}}}},
		{
			"if (x < 5) { y = 1 } else { do-nothing }",
			If{LessThan{v("x"), n(5)}, Assign{"y", n(1)}, DoNothing{}},
		},
		{
			"while (x < 5) { x = x * 3 }",
			While{LessThan{v("x"), n(5)}, Assign{"x", Multiply{v("x"), n(3)}}},
		},
		{
			"x = 1;\n// triple until big\nwhile (x < 5) { x = x * 3 }",
			Sequence{Assign{"x", n(1)}, While{LessThan{v("x"), n(5)}, Assign{"x", Multiply{v("x"), n(3)}}}},
		},
		{
			"while (true) { if (x) { do-nothing } else { y = 2; z = 3 } }",
			While{Boolean{true}, If{v("x"), DoNothing{}, Sequence{Assign{"y", n(2)}, Assign{"z", n(3)}}}},
		},
	}

	for _, c := range cases {
		got, err := ParseStatement(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%q:\n got: %s\nwant: %s", c.src, spew.Sdump(got), spew.Sdump(c.want))
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		root Root
		want error
	}{
		{"1 +", RootExpression, ErrTokenNotExpected},
		{"(1 + 2", RootExpression, ErrTokenNotExpected},
		{"1 2", RootExpression, ErrTokenNotExpected},
		{"x", RootStatement, ErrTokenNotExpected},
		{"1 + 2", RootStatement, ErrTokenNotExpected},
		{"if (x) { do-nothing }", RootStatement, ErrTokenNotExpected},
		{"while x { do-nothing }", RootStatement, ErrTokenNotExpected},
		{"while = 1", RootStatement, ErrTokenNotExpected},
		{"x = while", RootStatement, ErrTokenNotExpected},
		{"x = 1;", RootStatement, ErrTokenNotExpected},
		{"99999999999999999999", RootExpression, ErrBadNumber},
	}

	for _, c := range cases {
		if _, err := Parse(c.src, c.root); !errors.Is(err, c.want) {
			t.Errorf("%q as %s: expected %v, got %v", c.src, c.root, c.want, err)
		}
	}
}

func TestParseAny(t *testing.T) {
	s, err := ParseAny("x = 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(Statement); !ok {
		t.Errorf("expected a statement, got %T", s)
	}

	e, err := ParseAny("x + 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(Expression); !ok {
		t.Errorf("expected an expression, got %T", e)
	}

	if _, err := ParseAny("x = "); err == nil {
		t.Error("expected an error")
	}
}

// String renders Simple syntax that parses back to the same tree.
func TestStringRoundTrip(t *testing.T) {
	nodes := []Node{
		Add{Add{n(1), n(2)}, n(3)},
		Multiply{Add{n(1), n(2)}, Add{n(3), n(4)}},
		LessThan{LessThan{v("a"), v("b")}, Boolean{false}},
		Add{n(1), Multiply{n(2), n(3)}},
		While{LessThan{v("x"), n(5)}, Sequence{Assign{"x", Multiply{v("x"), n(3)}}, DoNothing{}}},
		If{Boolean{true}, Assign{"y", Add{v("y"), n(1)}}, DoNothing{}},
	}

	for _, node := range nodes {
		back, err := ParseAny(node.String())
		if err != nil {
			t.Errorf("%s: %v", node, err)
			continue
		}
		if !reflect.DeepEqual(back, node) {
			t.Errorf("%s parsed back as %s", node, back)
		}
	}
}

func TestStructuralEquality(t *testing.T) {
	a := Add{v("x"), Multiply{n(2), n(3)}}
	b := Add{v("x"), Multiply{n(2), n(3)}}
	if a != b {
		t.Error("structurally equal trees compare unequal")
	}
	if a == (Add{v("x"), Multiply{n(2), n(4)}}) {
		t.Error("different trees compare equal")
	}
}
