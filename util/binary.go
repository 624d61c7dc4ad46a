/*
   Copyright 2018 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package util holds the binary helpers shared across the project.
// All integers are big-endian on the wire.
package util

import (
	"encoding/binary"
	"io"
)

func Uint16AsBytes(i uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, i)
	return b
}

func Uint32AsBytes(i uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, i)
	return b
}

func Uint64AsBytes(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)
	return b
}

func BytesAsUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// WriteUint64 writes a big-endian 64-bit unsigned integer.
func WriteUint64(w io.Writer, i uint64) error {
	_, err := w.Write(Uint64AsBytes(i))
	return err
}

// ReadUint64 reads a big-endian 64-bit unsigned integer. It returns io.EOF
// when no bytes remain and io.ErrUnexpectedEOF on a partial read.
func ReadUint64(r io.Reader, i *uint64) error {
	b := make([]byte, 8)
	if _, err := io.ReadFull(r, b); err != nil {
		return err
	}
	*i = binary.BigEndian.Uint64(b)
	return nil
}
