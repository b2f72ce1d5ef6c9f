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

// The bfi command line tool runs programs with the VM in package
// github.com/push-eax/bfi/vm.
//
// Usage:
//
//	bfi [flags] program
//
//	-asm
//		  program is assembly source for package asm
//	-debug
//		  enable debug diagnostics
//	-depth int
//		  maximum loop nesting depth (default 1024)
//	-dump
//		  dump the VM state and tape to stderr upon exit
//	-eof value
//		  value stored by ',' at end of input: 255, 0 or keep
//	-list
//		  print a listing of the program and exit
//	-noraw
//		  disable raw terminal input
//	-segsize int
//		  tape segment size in cells (default 1024)
//	-trace
//		  log every executed instruction (implies -debug)
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// -debug: logs diagnostics to stderr and prints errors with a full stack trace.
//
// -noraw: upon startup, bfi switches the terminal to non-canonical mode unless
// stdin has been redirected, so that ',' gets bytes as soon as they are typed.
// In this mode, CTRL-D is treated as end of input. This flag disables this
// behavior.
//
// -with: the specified file is fed to the program as input before stdin. If
// specified multiple times, files will be fed to the VM in order of appearance
// on the command line.
//
// Exit status:
//
//	0	success
//	1	usage error
//	2	the program or a -with file cannot be opened
//	3	out of memory for the program
//	4	out of memory for the loop stack
//	5	malformed program
//	6	I/O error
//	10	out of memory for the tape
package main
