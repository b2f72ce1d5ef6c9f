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

import "github.com/pkg/errors"

// match returns the position of the ']' matching the '[' at pc.
func (i *Instance) match(pc int) (int, error) {
	depth := 1
	for p := pc + 1; p < len(i.Program); p++ {
		switch i.Program[p] {
		case OpOpen:
			depth++
		case OpClose:
			depth--
			if depth == 0 {
				return p, nil
			}
		}
	}
	return pc, &MalformedError{Kind: UnmatchedOpen, Pos: pc}
}

// next executes the instruction at PC.
func (i *Instance) next() (done bool, err error) {
	if i.PC >= len(i.Program) {
		if n := len(i.loops); n > 0 {
			return true, &MalformedError{Kind: UnmatchedOpen, Pos: i.loops[n-1]}
		}
		return true, nil
	}
	op := i.Program[i.PC]
	if i.trace != nil && IsInstruction(op) {
		i.trace(i, op)
	}
	switch op {
	case OpRight:
		err = i.Tape.MoveRight()
	case OpLeft:
		err = i.Tape.MoveLeft()
	case OpInc:
		i.Tape.Inc()
	case OpDec:
		i.Tape.Dec()
	case OpOut:
		err = i.out()
	case OpIn:
		err = i.in()
	case OpOpen:
		if i.Tape.Read() == 0 {
			// skip the loop body, PC lands on the matching ']'
			var end int
			if end, err = i.match(i.PC); err == nil {
				i.PC = end
			}
		} else if len(i.loops) == i.depth {
			err = &MalformedError{Kind: LoopOverflow, Pos: i.PC, Depth: i.depth}
		} else {
			i.loops = append(i.loops, i.PC)
		}
	case OpClose:
		n := len(i.loops)
		switch {
		case n == 0:
			err = &MalformedError{Kind: UnmatchedClose, Pos: i.PC}
		case i.Tape.Read() != 0:
			// back to the '[', the body starts right after it
			i.PC = i.loops[n-1]
		default:
			i.loops = i.loops[:n-1]
		}
	default:
		i.PC++
		return false, nil
	}
	if err != nil {
		return false, err
	}
	i.insCount++
	i.PC++
	return false, nil
}

// Step executes a single instruction, skipping over ignored bytes one at a
// time. It returns true when the end of the program has been reached.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error.
func (i *Instance) Step() (done bool, err error) {
	defer i.recoverError(&err)
	return i.next()
}

// Run starts execution of the VM and runs it to the end of the program.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error. A program that ends inside a loop fails with an UnmatchedOpen
// *MalformedError pointing at the innermost open '['.
func (i *Instance) Run() (err error) {
	defer i.recoverError(&err)
	for {
		done, err := i.next()
		if done || err != nil {
			return err
		}
	}
}

func (i *Instance) recoverError(err *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case error:
			*err = errors.Wrapf(e, "Recovered error @pc=%d/%d, loop depth %d/%d", i.PC, len(i.Program), len(i.loops), i.depth)
		default:
			panic(e)
		}
	}
}
