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
	"fmt"
	"io"
	"strconv"

	"github.com/push-eax/bfi/internal/iox"
	"github.com/push-eax/bfi/vm"
)

var opcodes = [...]struct {
	op    byte
	names []string
}{
	{vm.OpRight, []string{"right", "fwd"}},
	{vm.OpLeft, []string{"left", "back"}},
	{vm.OpInc, []string{"inc", "add"}},
	{vm.OpDec, []string{"dec", "sub"}},
	{vm.OpOut, []string{"out", "put"}},
	{vm.OpIn, []string{"in", "get"}},
	{vm.OpOpen, []string{"loop", "while"}},
	{vm.OpClose, []string{"end", "wend"}},
}

var opcodeIndex = make(map[string]byte)

func init() {
	for _, o := range opcodes {
		for _, n := range o.names {
			opcodeIndex[n] = o.op
		}
	}
}

// Mnemonic returns the mnemonic for instruction op, or the empty string if op
// is not an instruction.
func Mnemonic(op byte) string {
	for _, o := range opcodes {
		if o.op == op {
			return o.names[0]
		}
	}
	return ""
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Program, error) {
	p := newParser()
	if err := p.Parse(name, r); err != nil {
		return nil, err
	}
	return vm.Program(p.i), nil
}

// skip returns the position of the first instruction at or after pc.
func skip(prog []byte, pc int) int {
	for pc < len(prog) && !vm.IsInstruction(prog[pc]) {
		pc++
	}
	return pc
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given program to the specified io.Writer and returns the position following
// the disassembled code and any write error.
//
// Bytes that are not instructions are skipped. A run of identical instructions
// other than loop brackets is written as a single mnemonic followed by a count.
func Disassemble(prog []byte, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)
	pc = skip(prog, pc)
	if pc >= len(prog) {
		return pc, nil
	}
	op := prog[pc]
	io.WriteString(ew, Mnemonic(op))
	next = pc + 1
	if op == vm.OpOpen || op == vm.OpClose {
		return next, ew.Err
	}
	n := 1
	for p := skip(prog, next); p < len(prog) && prog[p] == op; p = skip(prog, p+1) {
		n++
		next = p + 1
	}
	if n > 1 {
		ew.Write([]byte{' '})
		io.WriteString(ew, strconv.Itoa(n))
	}
	return next, ew.Err
}

// DisassembleAll writes a listing of the given program to the specified
// io.Writer. Each line holds the position of the instruction as a comment
// followed by its disassembly, indented by loop nesting depth. The listing is
// valid assembly for Assemble.
//
// Unbalanced brackets are annotated in the listing. It will return any write
// error.
func DisassembleAll(prog []byte, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	depth := 0
	for pc := skip(prog, 0); pc < len(prog); pc = skip(prog, pc) {
		op := prog[pc]
		unmatched := false
		if op == vm.OpClose {
			if depth > 0 {
				depth--
			} else {
				unmatched = true
			}
		}
		fmt.Fprintf(ew, "( %6d ) ", pc)
		for n := 0; n < depth; n++ {
			io.WriteString(ew, "  ")
		}
		pc, _ = Disassemble(prog, pc, ew)
		if unmatched {
			io.WriteString(ew, " ( unmatched )")
		}
		if op == vm.OpOpen {
			depth++
		}
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	if depth > 0 {
		fmt.Fprintf(ew, "( %d unclosed loops )\n", depth)
	}
	return ew.Err
}
