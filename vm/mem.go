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
	"io"
	"os"

	"github.com/pkg/errors"
)

// Program is an instruction stream. Bytes that are not instructions are
// ignored by the VM.
type Program []byte

// makeBytes allocates a zeroed byte slice, turning an impossible size into an
// error instead of a runtime panic.
func makeBytes(n int) (b []byte, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("%v", e)
		}
	}()
	if n < 0 {
		return nil, errors.Errorf("negative size %d", n)
	}
	return make([]byte, n), nil
}

// Load loads a program from file fileName.
//
// Errors opening or reading the file are wrapped, and a program too large to
// be held in memory is reported as an *AllocError.
func Load(fileName string) (Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "fstat failed")
	}
	if !st.Mode().IsRegular() {
		// pipes and devices do not report a size
		p, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(err, "read failed")
		}
		return Program(p), nil
	}
	sz := st.Size()
	if sz > int64((^uint(0))>>1) { // MaxInt
		return nil, &AllocError{Resource: ResourceProgram, Size: -1, Err: errors.Errorf("%v: file too large", fileName)}
	}
	p, err := makeBytes(int(sz))
	if err != nil {
		return nil, &AllocError{Resource: ResourceProgram, Size: int(sz), Err: err}
	}
	n, err := io.ReadFull(f, p)
	switch err {
	case nil:
	case io.ErrUnexpectedEOF:
		// file shrunk since Stat
		p = p[:n]
	default:
		return nil, errors.Wrap(err, "read failed")
	}
	return Program(p), nil
}
