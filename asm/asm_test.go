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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/push-eax/bfi/asm"
	"github.com/push-eax/bfi/vm"
)

func TestAssemble(t *testing.T) {
	for _, test := range []struct {
		src  string
		prog string
	}{
		{"inc inc 3 dec", "++++-"},
		{"( comment ) right 2 left", ">><"},
		{"( multi\n  line ) add sub", "+-"},
		{".equ TEN 10 inc TEN", strings.Repeat("+", 10)},
		{"inc 0x10", strings.Repeat("+", 16)},
		{"dec 1048576", strings.Repeat("-", 1<<20)},
		{"inc 010", strings.Repeat("+", 8)},
		{"+[->+<] . ,", "+[->+<].,"},
		{"while get put wend", "[,.]"},
		{"fwd back", "><"},
		{"", ""},
	} {
		p, err := asm.Assemble("test", strings.NewReader(test.src))
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		if string(p) != test.prog {
			t.Errorf("%q:\nExpected: %q\nGot: %q", test.src, test.prog, p)
		}
	}
}

// check some errors. We're not checking the messages, rather that they point at
// the correct place.
func TestAssemble_errors(t *testing.T) {
	for _, code := range []string{
		"inc 0",
		"inc 1048577",
		"3",
		"inc foo",
		"right 2 3",
		".equ inc 3",
		".equ X y",
		"loop ( unterminated",
	} {
		_, err := asm.Assemble("test_errors", strings.NewReader(code))
		if code == "loop ( unterminated" {
			// an unterminated comment runs to the end of the source
			if err != nil {
				t.Errorf("%q: %v", code, err)
			}
			continue
		}
		errs, ok := err.(asm.ErrAsm)
		if !ok || len(errs) != 1 {
			t.Errorf("%q: unexpected error %v", code, err)
			continue
		}
		e := errs[0]
		tok := strings.Fields(code[e.Pos.Offset:])[0]
		if !strings.HasSuffix(e.Msg, tok) {
			t.Errorf("Error message \"%s\" points to %s", e.Msg, tok)
		}
		if !strings.HasPrefix(err.Error(), "test_errors:1:") {
			t.Errorf("Bad error position: %s", err)
		}
	}

	_, err := asm.Assemble("test_errors", strings.NewReader(strings.Repeat("foo ", 20)))
	if errs, ok := err.(asm.ErrAsm); !ok || len(errs) != 10 {
		t.Errorf("Expected 10 errors, got %v", err)
	}
}

func TestDisassemble(t *testing.T) {
	prog := []byte("a+ +b+-")
	var b bytes.Buffer
	pc, err := asm.Disassemble(prog, 0, &b)
	if err != nil {
		t.Fatal(err)
	}
	if pc != 6 || b.String() != "inc 3" {
		t.Fatalf("Got %q, next %d", b.String(), pc)
	}
	b.Reset()
	if pc, _ = asm.Disassemble(prog, pc, &b); pc != 7 || b.String() != "dec" {
		t.Fatalf("Got %q, next %d", b.String(), pc)
	}
	b.Reset()
	if pc, _ = asm.Disassemble(prog, pc, &b); pc != 7 || b.Len() != 0 {
		t.Fatalf("Got %q, next %d", b.String(), pc)
	}
	if asm.Mnemonic('x') != "" || asm.Mnemonic(vm.OpOpen) != "loop" {
		t.Error("bad mnemonic")
	}
}

func TestDisassembleAll_unbalanced(t *testing.T) {
	var b bytes.Buffer
	if err := asm.DisassembleAll([]byte("]+["), &b); err != nil {
		t.Fatal(err)
	}
	expected := "(      0 ) end ( unmatched )\n" +
		"(      1 ) inc\n" +
		"(      2 ) loop\n" +
		"( 1 unclosed loops )\n"
	if b.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, b.String())
	}
}

func strip(p []byte) []byte {
	var r []byte
	for _, c := range p {
		if vm.IsInstruction(c) {
			r = append(r, c)
		}
	}
	return r
}

func TestDisassembleAll_roundTrip(t *testing.T) {
	for _, src := range []string{
		"++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.",
		"comments + are - dropped [ > , . < ]",
		"]][[",
	} {
		var b bytes.Buffer
		if err := asm.DisassembleAll([]byte(src), &b); err != nil {
			t.Fatal(err)
		}
		p, err := asm.Assemble("listing", &b)
		if err != nil {
			t.Fatalf("%v\n%s", err, b.String())
		}
		if !bytes.Equal(strip([]byte(src)), p) {
			t.Errorf("Expected: %s\nGot: %s", strip([]byte(src)), p)
		}
	}
}
