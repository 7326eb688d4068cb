// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package lex turns stax source text into VM instructions.
//
// Source is a sequence of whitespace-separated tokens.  A token
// is either one of the keywords below or a base 10 integer with
// an optional sign, which compiles to a push.
//
//	pop + - not = dup . if else end
package lex

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"stax/vm"
)

var (
	ErrUnknownToken     = errors.New("unknown token")
	ErrMalformedLiteral = errors.New("malformed integer literal")
)

// keyword returns the op spelled tok.
func keyword(tok string) (vm.Op, bool) {
	switch tok {
	case "pop":
		return vm.Pop, true
	case "+":
		return vm.Add, true
	case "-":
		return vm.Sub, true
	case "not":
		return vm.Not, true
	case "=":
		return vm.Eq, true
	case "dup":
		return vm.Dup, true
	case ".":
		return vm.Dump, true
	case "if":
		return vm.If, true
	case "else":
		return vm.Else, true
	case "end":
		return vm.End, true
	}
	return 0, false
}

// Pos is a position in the source, counting from 1.  Col counts
// runes.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Error reports a token that does not compile.
type Error struct {
	Name  string // source name
	Pos   Pos
	Token string
	Err   error // ErrUnknownToken or ErrMalformedLiteral
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%v: %v %q", e.Name, e.Pos, e.Err, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Token compiles a single token.
func Token(tok string) (vm.Instr, error) {
	if op, ok := keyword(tok); ok {
		return vm.Instr{Op: op}, nil
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		if numeric(tok) {
			return vm.Instr{}, ErrMalformedLiteral
		}
		return vm.Instr{}, ErrUnknownToken
	}
	return vm.Instr{Op: vm.Push, Arg: vm.Cell(n)}, nil
}

// numeric reports whether tok looks like it was meant to be a
// number: a digit, optionally after a sign.
func numeric(tok string) bool {
	if len(tok) > 1 && (tok[0] == '+' || tok[0] == '-') {
		tok = tok[1:]
	}
	return tok != "" && tok[0] >= '0' && tok[0] <= '9'
}

// Lexer compiles source text on demand.  It implements
// vm.Cursor: each call to Next scans one more token, so a bad
// token is only reported once the program reaches it.
type Lexer struct {
	name string
	src  string
	pos  Pos   // position of src[0]
	err  error // sticky io.EOF or *Error
}

// New returns a Lexer over src.  name is used in error messages.
func New(name, src string) *Lexer {
	return &Lexer{name: name, src: src, pos: Pos{1, 1}}
}

// advance consumes n bytes of src holding a single rune r.
func (l *Lexer) advance(r rune, n int) {
	l.src = l.src[n:]
	if r == '\n' {
		l.pos.Line++
		l.pos.Col = 1
	} else {
		l.pos.Col++
	}
}

// word returns the next token and its position, or ok == false
// at the end of the source.
func (l *Lexer) word() (tok string, pos Pos, ok bool) {
	for l.src != "" {
		r, n := utf8.DecodeRuneInString(l.src)
		if !unicode.IsSpace(r) {
			break
		}
		l.advance(r, n)
	}
	if l.src == "" {
		return "", l.pos, false
	}
	pos, start := l.pos, l.src
	for l.src != "" {
		r, n := utf8.DecodeRuneInString(l.src)
		if unicode.IsSpace(r) {
			break
		}
		l.advance(r, n)
	}
	return start[:len(start)-len(l.src)], pos, true
}

// Next returns the next instruction, io.EOF at the end of the
// source, or an *Error.  Errors are sticky.
func (l *Lexer) Next() (vm.Instr, error) {
	if l.err != nil {
		return vm.Instr{}, l.err
	}
	tok, pos, ok := l.word()
	if !ok {
		l.err = io.EOF
		return vm.Instr{}, l.err
	}
	in, err := Token(tok)
	if err != nil {
		l.err = &Error{Name: l.name, Pos: pos, Token: tok, Err: err}
		return vm.Instr{}, l.err
	}
	return in, nil
}

// Parse compiles the whole of src.
func Parse(name, src string) ([]vm.Instr, error) {
	var (
		l    = New(name, src)
		prog []vm.Instr
	)
	for {
		in, err := l.Next()
		switch err {
		case nil:
			prog = append(prog, in)
		case io.EOF:
			return prog, nil
		default:
			return nil, err
		}
	}
}
