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

package iox

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, io.ErrShortWrite
	}
	w.n--
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	var b bytes.Buffer
	ew := NewErrWriter(&b)
	if _, err := ew.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if b.String() != "abc" {
		t.Errorf("Expected: abc\nGot: %s", b.String())
	}
	if NewErrWriter(ew) != ew {
		t.Error("NewErrWriter should not wrap an *ErrWriter")
	}
}

func TestErrWriter_sticky(t *testing.T) {
	ew := NewErrWriter(&failWriter{1})
	if _, err := ew.Write([]byte{1}); err != nil {
		t.Fatal(err)
	}
	if _, err := ew.Write([]byte{2}); errors.Cause(err) != io.ErrShortWrite {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := ew.Write([]byte{3}); err != ew.Err || ew.Err == nil {
		t.Fatalf("error is not sticky: %v", err)
	}
}
