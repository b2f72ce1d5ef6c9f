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

	"github.com/pkg/errors"
)

type flusher interface {
	Flush() error
}

type byteWriterWrapper struct {
	io.Writer
}

func (w *byteWriterWrapper) WriteByte(c byte) error {
	_, err := w.Writer.Write([]byte{c})
	return err
}

func (w *byteWriterWrapper) Flush() error {
	if f, ok := w.Writer.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// newWriter returns either w if it implements io.ByteWriter or wraps it up into
// a byteWriterWrapper.
func newWriter(w io.Writer) io.ByteWriter {
	switch ww := w.(type) {
	case nil:
		return nil
	case io.ByteWriter:
		return ww
	default:
		return &byteWriterWrapper{w}
	}
}

// byteReaderWrapper wraps a basic reader into an io.ByteReader and io.Closer.
type byteReaderWrapper struct {
	io.Reader
}

// maxEmptyReads is the number of consecutive (0, nil) reads after which
// ReadByte gives up with io.ErrNoProgress.
const maxEmptyReads = 100

func (r *byteReaderWrapper) ReadByte() (byte, error) {
	var b [1]byte
	for n := 0; n < maxEmptyReads; n++ {
		c, err := r.Reader.Read(b[:])
		if c > 0 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}

func (r *byteReaderWrapper) Close() error {
	if c, ok := r.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func newByteReader(r io.Reader) io.ByteReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.ByteReader:
		return rr
	default:
		return &byteReaderWrapper{r}
	}
}

type multiByteReader struct {
	readers []io.ByteReader
}

func (mr *multiByteReader) ReadByte() (byte, error) {
	for len(mr.readers) > 0 {
		c, err := mr.readers[0].ReadByte()
		if err != io.EOF {
			return c, err
		}
		// discard the reader and optionally close it
		if cl, ok := mr.readers[0].(io.Closer); ok {
			cl.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, io.EOF
}

func (mr *multiByteReader) pushReader(r io.Reader) {
	mr.readers = append([]io.ByteReader{newByteReader(r)}, mr.readers...)
}

// PushInput sets r as the current input for the VM. When this reader reaches
// EOF, the previously pushed reader will be used.
func (i *Instance) PushInput(r io.Reader) {
	// dont use a multi reader unless necessary
	switch in := i.input.(type) {
	case nil: // no input yet, single assign
		i.input = newByteReader(r)
	case *multiByteReader:
		in.pushReader(r)
	default:
		i.input = &multiByteReader{[]io.ByteReader{newByteReader(r), i.input}}
	}
}

// EOFMode selects the value stored by the ',' instruction when the input is
// exhausted.
type EOFMode int

// Supported EOF modes.
const (
	EOFMinusOne EOFMode = iota // store 255, the byte value of -1
	EOFZero                    // store 0
	EOFKeep                    // leave the cell unchanged
)

var eofModeNames = [...]string{
	EOFMinusOne: "255",
	EOFZero:     "0",
	EOFKeep:     "keep",
}

func (m EOFMode) String() string {
	if m < 0 || int(m) >= len(eofModeNames) {
		return "invalid"
	}
	return eofModeNames[m]
}

// ParseEOFMode returns the EOFMode whose String value is s.
func ParseEOFMode(s string) (EOFMode, error) {
	for m, n := range eofModeNames {
		if n == s {
			return EOFMode(m), nil
		}
	}
	if s == "-1" {
		return EOFMinusOne, nil
	}
	return 0, errors.Errorf("invalid EOF mode %q", s)
}

// in implements the ',' instruction.
func (i *Instance) in() error {
	// make sure prompts are visible before blocking on input
	if f, ok := i.output.(flusher); ok {
		if err := f.Flush(); err != nil {
			return errors.Wrap(err, "output flush failed")
		}
	}
	var err error = io.EOF
	var c byte
	if i.input != nil {
		c, err = i.input.ReadByte()
	}
	switch err {
	case nil:
		i.Tape.Write(c)
	case io.EOF:
		switch i.eof {
		case EOFMinusOne:
			i.Tape.Write(0xff)
		case EOFZero:
			i.Tape.Write(0)
		}
	default:
		return errors.Wrap(err, "input failed")
	}
	return nil
}

// out implements the '.' instruction.
func (i *Instance) out() error {
	if i.output == nil {
		return nil
	}
	return errors.Wrap(i.output.WriteByte(i.Tape.Read()), "output failed")
}
