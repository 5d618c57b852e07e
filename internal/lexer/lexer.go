package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"
)

var ErrUnexpectedRune = errors.New("unexpected rune")

type Lexer struct {
	// Row - is the current row in which the cursor is located.
	row int

	// Column - is, respectively, column of the current row.
	col int

	// File - is only used to label locations.
	file string

	// Source - is the source file reader.
	// here we use a bufio.Reader, which also buffers input for us
	// and allows to use convenient functions, like `ReadRune`
	source *bufio.Reader

	// TokenQueue - is the queue of tokens that have been read from the source but not yet parsed.
	// It is used to keep tokens, that we peeked, but not yet consumed.
	tokenQueue []TokenResult

	// Trace - when set, every scanned token is written here.
	trace io.Writer
}

// Constructs a new Lexer from io.Reader
func New(source io.Reader, file string) *Lexer {
	return &Lexer{
		row:    1,
		col:    1,
		file:   file,
		source: bufio.NewReader(source),
	}
}

// Trace - makes lexer log every token it scans to w.
func (l *Lexer) Trace(w io.Writer) *Lexer {
	l.trace = w
	return l
}

// Consume - consumes token from `tokenQueue`
// and not trigger lexer to lex new token. Used after peeking.
func (l *Lexer) Consume() {
	if len(l.tokenQueue) > 0 {
		l.tokenQueue = l.tokenQueue[1:]
	}
}

// Peek - peek the next token at specified position in tokenQueue
func (l *Lexer) Peek(count int) (Token, error) {
	// Make sure we have enough tokens in tokenQueue
	for i := len(l.tokenQueue); i < count; i += 1 {
		token, err := l.lognext()

		// Simply append to queue without checking for error
		l.tokenQueue = append(l.tokenQueue, TokenResult{Token: token, Error: err})
	}

	// If we have enough tokens in tokenQueue,
	// return the token at count-1, which is token index
	token := l.tokenQueue[count-1]

	return token.Token, token.Error
}

// Next - is like `next`, but returns token from queue
// if there is any and then removes it from queue.
func (l *Lexer) Next() (Token, error) {
	if len(l.tokenQueue) > 0 {
		t := l.tokenQueue[0]
		l.tokenQueue = l.tokenQueue[1:]
		return t.Token, t.Error
	}

	return l.lognext()
}

// lognext - it is a `next` decorator that logs the next token.
func (l *Lexer) lognext() (Token, error) {
	t, e := l.next()
	if e == nil && l.trace != nil {
		fmt.Fprintf(l.trace, "TOKEN: [%+v]\n", t)
	}
	return t, e
}

func (l *Lexer) here() Location {
	return Location{Row: l.row, Col: l.col, File: l.file}
}

// `next` - is the primary lexer function that does all the work.
// It never returns io.EOF: the end of input is reported as TokenEOF,
// as many times as it is asked for.
func (l *Lexer) next() (Token, error) {
	for {
		start := l.here()

		r, _, err := l.source.ReadRune()
		if err == io.EOF {
			return Token{Typ: TokenEOF, Location: start}, nil
		} else if err != nil {
			return UnknownToken, err
		}
		l.col += 1

		switch {
		case r == '\n':
			l.row += 1
			l.col = 1
			continue
		case unicode.IsSpace(r):
			continue
		case r == '/':
			// Only `//` comments, running to the end of the line
			if n, _, err := l.source.ReadRune(); err != nil || n != '/' {
				return UnknownToken, fmt.Errorf("%w: '/' at %s", ErrUnexpectedRune, start)
			}
			if _, err := l.source.ReadBytes('\n'); err == io.EOF {
				return Token{Typ: TokenEOF, Location: l.here()}, nil
			} else if err != nil {
				return UnknownToken, err
			}
			l.row += 1
			l.col = 1
			continue
		case unicode.IsLetter(r):
			// Names may continue with digits, and with dashes,
			// which is how `do-nothing` makes it through as one name.
			return Token{
				Typ:      TokenName,
				Value:    l.scan(r, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' }),
				Location: start,
			}, nil
		case unicode.IsDigit(r):
			return Token{
				Typ:      TokenNumber,
				Value:    l.scan(r, unicode.IsDigit),
				Location: start,
			}, nil
		}

		if typ, ok := punctuation[r]; ok {
			return Token{Typ: typ, Value: string(r), Location: start}, nil
		}

		return UnknownToken, fmt.Errorf("%w: %q at %s", ErrUnexpectedRune, r, start)
	}
}

// scan - collects runes while `accept` holds for them,
// placing the first rejected rune back in the `source` buffer.
func (l *Lexer) scan(first rune, accept func(rune) bool) string {
	runes := []rune{first}
	for {
		r, _, err := l.source.ReadRune()
		if err != nil {
			break
		}
		if !accept(r) {
			l.source.UnreadRune()
			break
		}
		runes = append(runes, r)
		l.col += 1
	}
	return string(runes)
}
