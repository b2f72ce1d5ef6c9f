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

import "fmt"

// Resource identifies the kind of memory a failed allocation was meant for.
type Resource int

// Resources for which an allocation may fail.
const (
	ResourceProgram Resource = iota
	ResourceStack
	ResourceTape
)

var resourceNames = [...]string{
	ResourceProgram: "program",
	ResourceStack:   "loop stack",
	ResourceTape:    "tape segment",
}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("Resource(%d)", int(r))
	}
	return resourceNames[r]
}

// AllocError is returned when memory for the program, the loop stack or a tape
// segment cannot be obtained. No forward progress is possible after such an
// error.
type AllocError struct {
	Resource Resource
	Size     int   // requested size in elements
	Err      error // underlying error, may be nil
}

func (e *AllocError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("couldn't allocate %s memory (%d): %v", e.Resource, e.Size, e.Err)
	}
	return fmt.Sprintf("couldn't allocate %s memory (%d)", e.Resource, e.Size)
}

func (e *AllocError) Unwrap() error { return e.Err }

// MalformedKind classifies malformed program errors.
type MalformedKind int

// Kinds of malformed programs.
const (
	UnmatchedOpen  MalformedKind = iota // '[' without a matching ']'
	UnmatchedClose                      // ']' without a matching '['
	LoopOverflow                        // loops nested deeper than the loop stack
)

// MalformedError reports a program that cannot be executed.
type MalformedError struct {
	Kind  MalformedKind
	Pos   int // position of the offending bracket in the program
	Depth int // loop stack capacity, LoopOverflow only
}

func (e *MalformedError) Error() string {
	switch e.Kind {
	case UnmatchedOpen:
		return fmt.Sprintf("malformed program: unmatched '[' at position %d", e.Pos)
	case UnmatchedClose:
		return fmt.Sprintf("malformed program: unmatched ']' at position %d", e.Pos)
	case LoopOverflow:
		return fmt.Sprintf("malformed program: loops nested deeper than %d at position %d", e.Depth, e.Pos)
	}
	return fmt.Sprintf("malformed program at position %d", e.Pos)
}
