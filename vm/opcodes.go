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

// Instructions.
const (
	OpRight byte = '>' // move the cursor right
	OpLeft  byte = '<' // move the cursor left
	OpInc   byte = '+' // increment the current cell
	OpDec   byte = '-' // decrement the current cell
	OpOut   byte = '.' // output the current cell
	OpIn    byte = ',' // input a byte into the current cell
	OpOpen  byte = '[' // loop while the current cell is not zero
	OpClose byte = ']' // end of loop
)

// IsInstruction reports whether c is one of the eight instructions.
func IsInstruction(c byte) bool {
	switch c {
	case OpRight, OpLeft, OpInc, OpDec, OpOut, OpIn, OpOpen, OpClose:
		return true
	}
	return false
}
