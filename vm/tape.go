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
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/push-eax/bfi/internal/iox"
)

// DefaultSegmentSize is the default number of cells in a tape segment.
const DefaultSegmentSize = 1024

// Allocator provides the storage of tape segments.
type Allocator interface {
	// Alloc returns a zeroed slice of exactly size bytes.
	Alloc(size int) ([]byte, error)
	// Free is called once for every slice returned by Alloc when the tape
	// is released.
	Free(b []byte)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) ([]byte, error) { return makeBytes(size) }
func (heapAllocator) Free([]byte)                    {}

// HeapAllocator allocates tape segments on the Go heap. Free is a no-op.
var HeapAllocator Allocator = heapAllocator{}

type segment struct {
	cells []byte
	prev  *segment // navigation only
	next  *segment
}

// Tape is an unbounded array of byte cells with a single cursor. Cells are
// stored in a chain of fixed size segments, each segment being allocated the
// first time the cursor crosses into it.
//
// The leftmost segment owns the chain through the next links. The cursor is
// a (segment, offset) pair that always designates a valid cell.
type Tape struct {
	head  *segment
	cur   *segment
	off   int
	size  int
	count int // live segments
	left  int // segments created left of the initial one
	pos   int
	alloc Allocator
}

// NewTape returns a new tape made of a single segment of size cells, with the
// cursor in the middle of it. If a is nil, HeapAllocator is used.
func NewTape(size int, a Allocator) (*Tape, error) {
	if size < 2 {
		return nil, errors.Errorf("invalid tape segment size %d", size)
	}
	if a == nil {
		a = HeapAllocator
	}
	t := &Tape{size: size, alloc: a}
	s, err := t.newSegment()
	if err != nil {
		return nil, err
	}
	t.head, t.cur, t.off = s, s, size/2
	return t, nil
}

func (t *Tape) newSegment() (*segment, error) {
	cells, err := t.alloc.Alloc(t.size)
	if err == nil && len(cells) != t.size {
		t.alloc.Free(cells)
		err = errors.Errorf("allocator returned %d cells", len(cells))
	}
	if err != nil {
		return nil, &AllocError{Resource: ResourceTape, Size: t.size, Err: err}
	}
	t.count++
	return &segment{cells: cells}, nil
}

// MoveRight moves the cursor one cell to the right, creating a new segment if
// the cursor is on the last cell of the rightmost segment. On error, the
// cursor does not move.
func (t *Tape) MoveRight() error {
	if t.off < t.size-1 {
		t.off++
		t.pos++
		return nil
	}
	if t.cur.next == nil {
		s, err := t.newSegment()
		if err != nil {
			return err
		}
		s.prev = t.cur
		t.cur.next = s
	}
	t.cur, t.off = t.cur.next, 0
	t.pos++
	return nil
}

// MoveLeft moves the cursor one cell to the left, creating a new segment if
// the cursor is on the first cell of the leftmost segment. On error, the
// cursor does not move.
func (t *Tape) MoveLeft() error {
	if t.off > 0 {
		t.off--
		t.pos--
		return nil
	}
	if t.cur.prev == nil {
		s, err := t.newSegment()
		if err != nil {
			return err
		}
		s.next = t.cur
		t.cur.prev = s
		t.head = s
		t.left++
	}
	t.cur, t.off = t.cur.prev, t.size-1
	t.pos--
	return nil
}

// Read returns the value of the cell under the cursor.
func (t *Tape) Read() byte { return t.cur.cells[t.off] }

// Write sets the value of the cell under the cursor.
func (t *Tape) Write(v byte) { t.cur.cells[t.off] = v }

// Inc increments the cell under the cursor, wrapping from 255 to 0.
func (t *Tape) Inc() { t.cur.cells[t.off]++ }

// Dec decrements the cell under the cursor, wrapping from 0 to 255.
func (t *Tape) Dec() { t.cur.cells[t.off]-- }

// Position returns the address of the cursor relative to its initial
// position. Addresses left of the start are negative.
func (t *Tape) Position() int { return t.pos }

// SegmentSize returns the number of cells per segment.
func (t *Tape) SegmentSize() int { return t.size }

// Segments returns the number of allocated segments.
func (t *Tape) Segments() int { return t.count }

// origin returns the address of the first cell of the leftmost segment.
func (t *Tape) origin() int { return -(t.size/2 + t.left*t.size) }

// Cells returns a copy of all allocated cells, from the leftmost to the
// rightmost segment, along with the address of the first returned cell.
func (t *Tape) Cells() (cells []byte, base int) {
	cells = make([]byte, 0, t.count*t.size)
	for s := t.head; s != nil; s = s.next {
		cells = append(cells, s.cells...)
	}
	return cells, t.origin()
}

const dumpWidth = 16

// Dump writes the non-zero parts of the tape to w, dumpWidth cells per line,
// each line prefixed with the address of its first cell. The line holding the
// cursor is always written and marked with a '*'.
func (t *Tape) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	cells, base := t.Cells()
	for n := 0; n < len(cells); n += dumpWidth {
		line := cells[n:min(n+dumpWidth, len(cells))]
		cursor := t.pos-base >= n && t.pos-base < n+len(line)
		if !cursor && allZero(line) {
			continue
		}
		mark := ' '
		if cursor {
			mark = '*'
		}
		fmt.Fprintf(ew, "%c%8d:", mark, base+n)
		for _, c := range line {
			fmt.Fprintf(ew, " %02x", c)
		}
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Release frees all segments through the tape's allocator and returns the
// number of segments released. The tape must not be used afterwards, except
// for further calls to Release which will release nothing.
func (t *Tape) Release() int {
	var n int
	for s := t.head; s != nil; {
		next := s.next
		t.alloc.Free(s.cells)
		s.cells, s.prev, s.next = nil, nil, nil
		s = next
		n++
	}
	t.head, t.cur, t.count = nil, nil, 0
	return n
}
