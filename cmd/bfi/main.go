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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/push-eax/bfi/asm"
	"github.com/push-eax/bfi/vm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit statuses.
const (
	exitOK = iota
	exitUsage
	exitOpen
	exitProgramMem
	exitStackMem
	exitMalformed
	exitIO
	exitTapeMem = 10
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

type eofMode vm.EOFMode

func (m *eofMode) String() string { return vm.EOFMode(*m).String() }
func (m *eofMode) Set(s string) error {
	v, err := vm.ParseEOFMode(s)
	if err != nil {
		return err
	}
	*m = eofMode(v)
	return nil
}
func (m *eofMode) Get() interface{} { return vm.EOFMode(*m) }

type config struct {
	eof      eofMode
	segSize  int
	depth    int
	with     fileList
	asm      bool
	noRawIO  bool
	dump     bool
	list     bool
	trace    bool
	debug    bool
	fileName string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	var c config
	fs := flag.NewFlagSet("bfi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: bfi [flags] program\n")
		fs.PrintDefaults()
	}
	fs.Var(&c.eof, "eof", "value stored by ',' at end of input: 255, 0 or keep")
	fs.IntVar(&c.segSize, "segsize", vm.DefaultSegmentSize, "tape segment size in cells")
	fs.IntVar(&c.depth, "depth", vm.DefaultLoopDepth, "maximum loop nesting depth")
	fs.Var(&c.with, "with", "Add `filename` to the input list (can be specified multiple times)")
	fs.BoolVar(&c.asm, "asm", false, "program is assembly source for package asm")
	fs.BoolVar(&c.noRawIO, "noraw", false, "disable raw terminal input")
	fs.BoolVar(&c.dump, "dump", false, "dump the VM state and tape to stderr upon exit")
	fs.BoolVar(&c.list, "list", false, "print a listing of the program and exit")
	fs.BoolVar(&c.trace, "trace", false, "log every executed instruction (implies -debug)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug diagnostics")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case fs.NArg() != 1:
		fs.Usage()
		return nil, errors.New("expected exactly one program file")
	case c.segSize < 2:
		return nil, errors.Errorf("invalid segment size %d", c.segSize)
	case c.depth < 1:
		return nil, errors.Errorf("invalid loop depth %d", c.depth)
	}
	c.fileName = fs.Arg(0)
	c.debug = c.debug || c.trace
	return &c, nil
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)).With(zap.String("run", uuid.New().String()))
}

// exitStatus maps an error returned by the VM to an exit status.
func exitStatus(err error) int {
	switch e := errors.Cause(err).(type) {
	case nil:
		return exitOK
	case *vm.AllocError:
		switch e.Resource {
		case vm.ResourceProgram:
			return exitProgramMem
		case vm.ResourceStack:
			return exitStackMem
		default:
			return exitTapeMem
		}
	case *vm.MalformedError, asm.ErrAsm:
		return exitMalformed
	}
	return exitIO
}

func loadProgram(c *config) (vm.Program, int, error) {
	if !c.asm {
		prog, err := vm.Load(c.fileName)
		if err != nil {
			if _, ok := errors.Cause(err).(*vm.AllocError); ok {
				return nil, exitProgramMem, err
			}
			return nil, exitOpen, errors.Wrap(err, "Couldn't open the program")
		}
		return prog, exitOK, nil
	}
	f, err := os.Open(c.fileName)
	if err != nil {
		return nil, exitOpen, errors.Wrap(err, "Couldn't open the program")
	}
	defer f.Close()
	prog, err := asm.Assemble(c.fileName, bufio.NewReader(f))
	if err != nil {
		return nil, exitMalformed, err
	}
	return prog, exitOK, nil
}

func traceFunc(logger *zap.Logger) vm.TraceFunc {
	return func(i *vm.Instance, op byte) {
		logger.Debug("exec",
			zap.Int("pc", i.PC),
			zap.String("op", asm.Mnemonic(op)),
			zap.Int("depth", i.Depth()),
			zap.Int("cursor", i.Tape.Position()),
			zap.Uint8("cell", i.Tape.Read()))
	}
}

func report(stderr io.Writer, c *config, err error) {
	if c != nil && c.debug {
		fmt.Fprintf(stderr, "bfi: %+v\n", err)
		return
	}
	fmt.Fprintf(stderr, "bfi: %v\n", err)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c, err := parseFlags(args, stderr)
	if err != nil {
		if err != flag.ErrHelp {
			report(stderr, nil, err)
		}
		return exitUsage
	}

	logger := newLogger(stderr, c.debug)
	defer logger.Sync()

	prog, status, err := loadProgram(c)
	if err != nil {
		logger.Debug("load failed", zap.String("program", c.fileName), zap.Error(err))
		report(stderr, c, err)
		return status
	}
	logger.Debug("program loaded", zap.String("program", c.fileName), zap.Int("size", len(prog)))

	if c.list {
		w := bufio.NewWriter(stdout)
		err = asm.DisassembleAll(prog, w)
		if err == nil {
			err = w.Flush()
		}
		if err != nil {
			report(stderr, c, err)
			return exitIO
		}
		return exitOK
	}

	output := bufio.NewWriter(stdout)
	opts := []vm.Option{
		vm.Output(output),
		vm.OnEOF(vm.EOFMode(c.eof)),
		vm.SegmentSize(c.segSize),
		vm.LoopDepth(c.depth),
	}
	if c.trace {
		opts = append(opts, vm.Trace(traceFunc(logger)))
	}

	// try to switch the input terminal to raw mode.
	if f, ok := stdin.(*os.File); ok && !c.noRawIO {
		if tearDown, err := setRawIO(f); err == nil {
			defer tearDown()
			logger.Debug("raw terminal input enabled")
			stdin = &eotReader{r: f}
		} else {
			logger.Debug("raw terminal input disabled", zap.Error(err))
			stdin = bufio.NewReader(f)
		}
	}
	opts = append(opts, vm.Input(stdin))

	// append -with files to input stack in reverse order so that they load
	// in order of appearance on the command line.
	for n := len(c.with) - 1; n >= 0; n-- {
		f, err := os.Open(c.with[n])
		if err != nil {
			report(stderr, c, errors.Wrap(err, "Couldn't open input file"))
			return exitOpen
		}
		defer f.Close()
		opts = append(opts, vm.Input(bufio.NewReader(f)))
	}

	i, err := vm.New(prog, opts...)
	if err != nil {
		report(stderr, c, err)
		return exitStatus(err)
	}
	defer i.Close()

	start := time.Now()
	err = i.Run()
	elapsed := time.Since(start)
	if ferr := output.Flush(); err == nil && ferr != nil {
		err = errors.Wrap(ferr, "output flush failed")
	}
	logger.Debug("run complete",
		zap.Int64("instructions", i.InstructionCount()),
		zap.Duration("elapsed", elapsed),
		zap.Int("segments", i.Tape.Segments()),
		zap.Error(err))

	if c.dump {
		if derr := i.Dump(stderr); derr != nil {
			logger.Warn("dump failed", zap.Error(derr))
		}
	}
	if err != nil {
		if c.debug {
			logger.Error("run failed", zap.Int("pc", i.PC), zap.Ints("loops", i.Loops()), zap.Error(err))
		}
		report(stderr, c, err)
		return exitStatus(err)
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
