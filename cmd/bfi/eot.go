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

import "io"

const (
	eot           = 0x04
	maxEmptyReads = 100
)

// eotReader reads from a terminal in non-canonical mode, where ^D no longer
// signals end of file. It reports io.EOF on the first EOT byte and every
// read after that.
type eotReader struct {
	r    io.Reader
	b    [1]byte
	done bool
}

func (r *eotReader) ReadByte() (byte, error) {
	if r.done {
		return 0, io.EOF
	}
	for tries := 0; tries < maxEmptyReads; tries++ {
		n, err := r.r.Read(r.b[:])
		if n > 0 {
			if r.b[0] == eot {
				r.done = true
				return 0, io.EOF
			}
			return r.b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}

func (r *eotReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}
