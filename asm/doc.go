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

// Package asm provides utility functions to assemble and disassemble programs
// for the VM in package github.com/push-eax/bfi/vm.
//
// Supported assembler mnemonics:
//
//	instruction	asm	alias	description
//	-----------	---	-----	-------------------------------------------------
//	>		right	fwd	move the cursor one cell to the right
//	<		left	back	move the cursor one cell to the left
//	+		inc	add	increment the current cell
//	-		dec	sub	decrement the current cell
//	.		out	put	write the current cell to the output
//	,		in	get	read one byte from the input into the current cell
//	[		loop	while	if the current cell is 0, jump past the matching end
//	]		end	wend	if the current cell is not 0, jump back after the matching loop
//
// Counts:
//
// A mnemonic other than loop or end can be followed by a repeat count: "inc 5"
// assembles to "+++++". The count can be a decimal, octal (leading 0) or hex
// (leading 0x) number, or a constant.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space. That is:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Raw code:
//
// Any word made only of the eight instruction characters is copied as is to
// the program, so the mnemonics can be freely mixed with plain code:
//
//	inc 8 [->++++++++<] right out
//
// Constants:
//
// The .equ directive defines a constant that can be used as a count:
//
//	.equ WIDTH 80
//	inc WIDTH
//
// Disassembly:
//
// DisassembleAll produces a listing with the position of each instruction in a
// comment, indented by loop nesting depth. Runs of identical instructions are
// collapsed into a mnemonic and a count. The listing assembles back into the
// original program, stripped of comments.
package asm
