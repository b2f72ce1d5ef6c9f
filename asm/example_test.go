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
	"fmt"
	"os"
	"strings"

	"github.com/push-eax/bfi/asm"
)

func ExampleDisassembleAll() {
	code := `
		( clear the current cell, then add N to the next and move it back )
		.equ N 3
		inc 2
		loop dec end
		fwd
		inc N
		[-<+>]
`

	prog, err := asm.Assemble("example", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(prog))

	asm.DisassembleAll(prog, os.Stdout)

	// Output:
	// ++[-]>+++[-<+>]
	// (      0 ) inc 2
	// (      2 ) loop
	// (      3 )   dec
	// (      4 ) end
	// (      5 ) right
	// (      6 ) inc 3
	// (      9 ) loop
	// (     10 )   dec
	// (     11 )   left
	// (     12 )   inc
	// (     13 )   right
	// (     14 ) end
}
