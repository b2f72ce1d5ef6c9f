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

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/push-eax/bfi/asm"
	"github.com/push-eax/bfi/vm"
)

const hello = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func runCLI(stdin string, args ...string) (status int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	status = run(args, strings.NewReader(stdin), &out, &errOut)
	return status, out.String(), errOut.String()
}

func TestRun(t *testing.T) {
	helloFile := writeFile(t, "hello.b", hello)
	catFile := writeFile(t, "cat.b", ",+[-.,+]")
	cat0File := writeFile(t, "cat0.b", ",[.,]")
	eofFile := writeFile(t, "eof.b", "+++,.")
	deepFile := writeFile(t, "deep.b", "+[+[-]-]")
	asmFile := writeFile(t, "prog.s", ".equ A 65\ninc A out inc out\n")
	badAsm := writeFile(t, "bad.s", "inc foo\n")
	with1 := writeFile(t, "in1", "ab")
	with2 := writeFile(t, "in2", "cd")

	data := []struct {
		name   string
		args   []string
		stdin  string
		status int
		stdout string
		stderr string // substring expected in stderr
	}{
		{"no args", nil, "", exitUsage, "", "usage: bfi"},
		{"two args", []string{helloFile, catFile}, "", exitUsage, "", "usage: bfi"},
		{"bad flag", []string{"-nosuchflag", helloFile}, "", exitUsage, "", "flag provided but not defined"},
		{"bad eof", []string{"-eof", "42", helloFile}, "", exitUsage, "", "invalid value"},
		{"bad depth", []string{"-depth", "0", helloFile}, "", exitUsage, "", "invalid loop depth"},
		{"bad segsize", []string{"-segsize", "1", helloFile}, "", exitUsage, "", "invalid segment size"},
		{"missing", []string{filepath.Join(t.TempDir(), "missing.b")}, "", exitOpen, "", "Couldn't open the program"},
		{"hello", []string{helloFile}, "", exitOK, "Hello World!\n", ""},
		{"cat", []string{catFile}, "hello", exitOK, "hello", ""},
		{"eof default", []string{eofFile}, "", exitOK, "\xff", ""},
		{"eof 0", []string{"-eof", "0", eofFile}, "", exitOK, "\x00", ""},
		{"eof keep", []string{"-eof", "keep", eofFile}, "", exitOK, "\x03", ""},
		{"cat eof 0", []string{"-eof", "0", cat0File}, "hello", exitOK, "hello", ""},
		{"with", []string{"-with", with1, "-with", with2, catFile}, "ef", exitOK, "abcdef", ""},
		{"with missing", []string{"-with", filepath.Join(t.TempDir(), "nope"), catFile}, "", exitOpen, "", "Couldn't open input file"},
		{"malformed open", []string{writeFile(t, "open.b", "+[")}, "", exitMalformed, "", "unmatched '['"},
		{"malformed close", []string{writeFile(t, "close.b", "+]")}, "", exitMalformed, "", "unmatched ']'"},
		{"loop overflow", []string{"-depth", "1", deepFile}, "", exitMalformed, "", "loops nested deeper than 1"},
		{"asm", []string{"-asm", asmFile}, "", exitOK, "AB", ""},
		{"asm error", []string{"-asm", badAsm}, "", exitMalformed, "", "Unknown mnemonic foo"},
		{"list", []string{"-list", writeFile(t, "list.b", "+[-]")}, "", exitOK,
			"(      0 ) inc\n(      1 ) loop\n(      2 )   dec\n(      3 ) end\n", ""},
		{"dump", []string{"-dump", writeFile(t, "dump.b", "++>+++")}, "", exitOK, "", "cursor: 1\n"},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			status, stdout, stderr := runCLI(d.stdin, d.args...)
			if status != d.status {
				t.Errorf("status: expected %d, got %d\nstderr: %s", d.status, status, stderr)
			}
			if stdout != d.stdout {
				t.Errorf("stdout: expected %q, got %q", d.stdout, stdout)
			}
			if !strings.Contains(stderr, d.stderr) {
				t.Errorf("stderr: expected to contain %q, got %q", d.stderr, stderr)
			}
		})
	}
}

func TestRun_trace(t *testing.T) {
	fn := writeFile(t, "trace.b", "+>-")
	status, stdout, stderr := runCLI("", "-trace", fn)
	if status != exitOK {
		t.Fatalf("status: expected %d, got %d\nstderr: %s", exitOK, status, stderr)
	}
	if stdout != "" {
		t.Errorf("unexpected output %q", stdout)
	}
	if n := strings.Count(stderr, "exec"); n != 3 {
		t.Errorf("expected 3 exec log entries, got %d:\n%s", n, stderr)
	}
	for _, s := range []string{`"op": "inc"`, `"op": "right"`, `"op": "dec"`, `"run": `, "run complete"} {
		if !strings.Contains(stderr, s) {
			t.Errorf("expected %q in log output:\n%s", s, stderr)
		}
	}
}

func TestRun_quiet(t *testing.T) {
	fn := writeFile(t, "quiet.b", "+.")
	status, _, stderr := runCLI("", fn)
	if status != exitOK {
		t.Fatalf("status: expected %d, got %d", exitOK, status)
	}
	if stderr != "" {
		t.Errorf("expected no diagnostics without -debug, got %q", stderr)
	}
}

func TestExitStatus(t *testing.T) {
	data := []struct {
		err    error
		status int
	}{
		{nil, exitOK},
		{&vm.AllocError{Resource: vm.ResourceProgram}, exitProgramMem},
		{&vm.AllocError{Resource: vm.ResourceStack}, exitStackMem},
		{errors.Wrap(&vm.AllocError{Resource: vm.ResourceTape}, "Recovered error"), exitTapeMem},
		{&vm.MalformedError{Kind: vm.UnmatchedClose}, exitMalformed},
		{asm.ErrAsm{}, exitMalformed},
		{errors.Wrap(errors.New("broken pipe"), "output failed"), exitIO},
	}
	for _, d := range data {
		if got := exitStatus(d.err); got != d.status {
			t.Errorf("%v: expected status %d, got %d", d.err, d.status, got)
		}
	}
}

func TestEOTReader(t *testing.T) {
	r := &eotReader{r: strings.NewReader("ab\x04cd")}
	var got []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			break
		}
		got = append(got, c)
	}
	if string(got) != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
	if _, err := r.ReadByte(); err == nil {
		t.Error("expected EOF after EOT")
	}
}

type stallReader struct{}

func (stallReader) Read([]byte) (int, error) { return 0, nil }

func TestEOTReader_noProgress(t *testing.T) {
	r := &eotReader{r: stallReader{}}
	if _, err := r.ReadByte(); err != io.ErrNoProgress {
		t.Errorf("expected io.ErrNoProgress, got %v", err)
	}
}
