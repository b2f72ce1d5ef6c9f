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

package vm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/push-eax/bfi/internal/iox"
)

// DefaultLoopDepth is the default capacity of the loop stack.
const DefaultLoopDepth = 1024

// TraceFunc is the function prototype for instruction trace hooks. It is
// called before the instruction at i.PC is executed.
type TraceFunc func(i *Instance, op byte)

// Instance represents a VM instance.
type Instance struct {
	PC       int     // Program Counter (aka. Instruction Pointer)
	Program  Program // Instruction stream, never modified
	Tape     *Tape   // Memory
	loops    []int
	depth    int
	segSize  int
	alloc    Allocator
	insCount int64
	input    io.ByteReader
	output   io.ByteWriter
	eof      EOFMode
	trace    TraceFunc
}

// Option interface
type Option func(*Instance) error

// Input pushes the given io.Reader on top of the input stack.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output configures the output writer. If w implements Flush() error, it
// will be flushed before each read from the input.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = newWriter(w)
		return nil
	}
}

// SegmentSize sets the number of cells per tape segment. The default is
// DefaultSegmentSize.
func SegmentSize(size int) Option {
	return func(i *Instance) error {
		if size < 2 {
			return errors.Errorf("invalid tape segment size %d", size)
		}
		i.segSize = size
		return nil
	}
}

// LoopDepth sets the capacity of the loop stack, that is the maximum loop
// nesting depth. The default is DefaultLoopDepth.
func LoopDepth(depth int) Option {
	return func(i *Instance) error {
		if depth < 1 {
			return &AllocError{Resource: ResourceStack, Size: depth, Err: errors.New("invalid loop depth")}
		}
		i.depth = depth
		return nil
	}
}

// WithAllocator sets the allocator for tape segments. The default is
// HeapAllocator.
func WithAllocator(a Allocator) Option {
	return func(i *Instance) error { i.alloc = a; return nil }
}

// OnEOF sets the value stored by ',' when the input is exhausted. The default
// is EOFMinusOne.
func OnEOF(mode EOFMode) Option {
	return func(i *Instance) error {
		if mode < EOFMinusOne || mode > EOFKeep {
			return errors.Errorf("invalid EOF mode %d", int(mode))
		}
		i.eof = mode
		return nil
	}
}

// Trace sets an instruction trace hook.
func Trace(fn TraceFunc) Option {
	return func(i *Instance) error { i.trace = fn; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance for the given program.
//
// The loop stack and the first tape segment are allocated here. Options will
// be set by calling SetOptions before allocation.
func New(prog Program, opts ...Option) (*Instance, error) {
	i := &Instance{
		Program: prog,
		depth:   DefaultLoopDepth,
		segSize: DefaultSegmentSize,
		alloc:   HeapAllocator,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	loops, err := makeStack(i.depth)
	if err != nil {
		return nil, err
	}
	i.loops = loops
	if i.Tape, err = NewTape(i.segSize, i.alloc); err != nil {
		return nil, err
	}
	return i, nil
}

func makeStack(depth int) (s []int, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = &AllocError{Resource: ResourceStack, Size: depth, Err: errors.Errorf("%v", e)}
		}
	}()
	return make([]int, 0, depth), nil
}

// Depth returns the current loop nesting depth.
func (i *Instance) Depth() int {
	return len(i.loops)
}

// Loops returns the loop stack: the positions of the currently open '['
// instructions, innermost last. The returned slice must not be modified.
func (i *Instance) Loops() []int {
	return i.loops
}

// InstructionCount returns the number of instructions executed so far.
// Ignored bytes are not counted.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

func dumpSlice(w io.Writer, a []int) {
	l := len(a) - 1
	if l >= 0 {
		for i := 0; i < l; i++ {
			io.WriteString(w, strconv.Itoa(a[i]))
			w.Write([]byte{' '})
		}
		io.WriteString(w, strconv.Itoa(a[l]))
	}
}

// Dump writes the VM state to the specified io.Writer: PC, loop stack, cursor
// position and the non-zero parts of the tape.
func (i *Instance) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	fmt.Fprintf(ew, "pc: %d/%d\nloops: [", i.PC, len(i.Program))
	dumpSlice(ew, i.loops)
	fmt.Fprintf(ew, "]\ninstructions: %d\n", i.insCount)
	if i.Tape == nil || i.Tape.Segments() == 0 {
		return ew.Err
	}
	fmt.Fprintf(ew, "cursor: %d\nsegments: %d x %d\n", i.Tape.Position(), i.Tape.Segments(), i.Tape.SegmentSize())
	if ew.Err != nil {
		return ew.Err
	}
	return i.Tape.Dump(ew)
}

// Close releases the tape. The instance must not be run afterwards.
func (i *Instance) Close() error {
	if i.Tape != nil {
		i.Tape.Release()
	}
	return nil
}
