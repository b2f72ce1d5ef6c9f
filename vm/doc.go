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

// Package vm implements an execution engine for the eight instruction tape
// language usually known as brainfuck.
//
// A program is a byte slice. The bytes '>', '<', '+', '-', '.', ',', '[' and ']'
// are instructions, anything else is ignored. Programs run directly from
// source: there is no parse step and loop brackets are matched on demand. The
// '[' instruction scans forward for its matching ']' only when the loop body
// must be skipped, and ']' jumps back using a stack of open loop positions.
//
// The memory of the VM is a Tape: an unbounded array of byte cells addressed
// by a single cursor. It is stored as a doubly linked chain of fixed size
// segments that grows on demand in both directions. Segment storage may be
// supplied by a custom Allocator, which makes allocation failures and
// segment accounting observable.
//
// Malformed programs (unbalanced brackets, loops nested deeper than the loop
// stack capacity) are detected at run time and reported as a *MalformedError,
// with the PC pointing at the offending instruction.
//
// Cells are bytes and arithmetic wraps modulo 256. The value stored by ',' at
// the end of input is configurable with the OnEOF option and defaults to 255.
package vm
