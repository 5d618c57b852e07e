package lexer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func collect(t *testing.T, src string) []Token {
	t.Helper()
	l := New(strings.NewReader(src), "test.simple")
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		tokens = append(tokens, tok)
		if tok.Typ == TokenEOF {
			return tokens
		}
	}
}

func TestLexerTokens(t *testing.T) {
	tokens := collect(t, "while (x < 10) { x = x * 3 + 1; do-nothing }")

	want := []struct {
		typ   TokenType
		value string
	}{
		{TokenName, "while"},
		{TokenParenOpen, "("},
		{TokenName, "x"},
		{TokenLess, "<"},
		{TokenNumber, "10"},
		{TokenParenClose, ")"},
		{TokenBraceOpen, "{"},
		{TokenName, "x"},
		{TokenEquals, "="},
		{TokenName, "x"},
		{TokenStar, "*"},
		{TokenNumber, "3"},
		{TokenPlus, "+"},
		{TokenNumber, "1"},
		{TokenSemicolon, ";"},
		{TokenName, "do-nothing"},
		{TokenBraceClose, "}"},
		{TokenEOF, ""},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Typ != w.typ || tokens[i].Value != w.value {
			t.Errorf("token %d: got %s %q, want %s %q", i, tokens[i].Typ, tokens[i].Value, w.typ, w.value)
		}
	}
}

func TestLexerLocations(t *testing.T) {
	tokens := collect(t, "x = 1;\n  // comment\n  y = 22")

	y := tokens[4]
	if y.Value != "y" {
		t.Fatalf("expected y, got %s", y)
	}
	if y.Location.Row != 3 || y.Location.Col != 3 || y.Location.File != "test.simple" {
		t.Errorf("y at %s, want test.simple:3:3", y.Location)
	}

	num := tokens[6]
	if num.Value != "22" || num.Location.Col != 7 {
		t.Errorf("22 at %s", num.Location)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New(strings.NewReader("a = 1"), "")

	second, err := l.Peek(2)
	if err != nil {
		t.Fatal(err)
	}
	if second.Typ != TokenEquals {
		t.Fatalf("peek 2: got %s", second)
	}

	first, err := l.Next()
	if err != nil || first.Value != "a" {
		t.Fatalf("next: got %s, %v", first, err)
	}

	l.Consume()
	third, err := l.Next()
	if err != nil || third.Value != "1" {
		t.Fatalf("after consume: got %s, %v", third, err)
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	l := New(strings.NewReader(""), "")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil || tok.Typ != TokenEOF {
			t.Fatalf("call %d: got %s, %v", i, tok, err)
		}
	}
}

func TestLexerUnexpectedRune(t *testing.T) {
	for _, src := range []string{"x = 1 - 2", "x / y", "@"} {
		l := New(strings.NewReader(src), "")
		var err error
		for err == nil {
			var tok Token
			tok, err = l.Next()
			if tok.Typ == TokenEOF {
				break
			}
		}
		if !errors.Is(err, ErrUnexpectedRune) {
			t.Errorf("%q: expected ErrUnexpectedRune, got %v", src, err)
		}
	}
}

func TestLexerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New(strings.NewReader("x"), "").Trace(&buf)
	if _, err := l.Next(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "TOKEN:") {
		t.Errorf("trace output missing: %q", buf.String())
	}
}
