// This file is part of bfi - https://github.com/push-eax/bfi
//
// Copyright 2019 Kiernan Roche
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"bytes"
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/push-eax/bfi/vm"
)

const maxErrors = 10

// maxCount is the largest repeat count accepted after a mnemonic.
const maxCount = 1 << 20

// Error is an assembly error at a given source position.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm encapsulates a list of assembly errors.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for n := range e {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[n].Error())
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

// isRaw reports whether s is made of instructions only.
func isRaw(s string) bool {
	for n := 0; n < len(s); n++ {
		if !vm.IsInstruction(s[n]) {
			return false
		}
	}
	return len(s) > 0
}

type parser struct {
	i      []byte
	s      scanner.Scanner
	consts map[string]int
	last   int // position of the last mnemonic, -1 if a count is not allowed
	errs   ErrAsm
}

func newParser() *parser {
	return &parser{
		consts: make(map[string]int),
		last:   -1,
	}
}

func (p *parser) error(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errs = append(p.errs, Error{pos, msg})
}

// value returns the integer value of a number or constant token.
func (p *parser) value(s string) (int, bool) {
	if n, err := strconv.ParseInt(s, 0, 32); err == nil {
		return int(n), true
	}
	if v, ok := p.consts[s]; ok {
		return v, true
	}
	return 0, false
}

func (p *parser) repeat(n int) {
	if p.last < 0 {
		p.error("Unexpected count " + strconv.Itoa(n))
		return
	}
	if n < 1 {
		p.error("Invalid count " + strconv.Itoa(n))
		return
	}
	if n > maxCount {
		p.error("Count too large " + strconv.Itoa(n))
		return
	}
	op := p.i[p.last]
	for ; n > 1; n-- {
		p.i = append(p.i, op)
	}
	p.last = -1
}

func (p *parser) equ() {
	if p.s.Scan() != scanner.Ident {
		p.error(".equ: expected identifier, got " + p.s.TokenText())
		return
	}
	name, namePos := p.s.TokenText(), p.s.Position
	if p.s.Scan() != scanner.Ident {
		p.error(".equ: expected value, got " + p.s.TokenText())
		return
	}
	_, isOp := opcodeIndex[name]
	if _, ok := p.value(name); ok || isOp || isRaw(name) || name == "(" {
		p.errs = append(p.errs, Error{namePos, ".equ: invalid constant name " + name})
		return
	}
	v, ok := p.value(p.s.TokenText())
	if !ok {
		p.error(".equ: invalid value " + p.s.TokenText())
		return
	}
	p.consts[name] = v
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.error("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		switch {
		case s == "(":
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
		case s == ".equ":
			p.equ()
			p.last = -1
		default:
			if n, ok := p.value(s); ok {
				p.repeat(n)
			} else if op, ok := opcodeIndex[s]; ok {
				p.last = len(p.i)
				p.i = append(p.i, op)
			} else if isRaw(s) {
				p.i = append(p.i, s...)
				p.last = -1
			} else {
				p.error("Unknown mnemonic " + s)
			}
		}
	}
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
