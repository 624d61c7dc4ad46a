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

// Package dna implements fixed-width nucleotide strands over the IUPAC
// alphabet. A strand of length L is a 4L-bit word, one nibble per symbol,
// first symbol in the most significant nibble.
//
// The nibble values are chosen so that the Watson-Crick complement of a
// symbol is the 4-bit reversal of its nibble. Complementing a whole strand
// then takes two masked bit swaps, with no table lookups.
package dna

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxLength is bounded by the 64-bit strand word.
const MaxLength = 16

// BadSymbolError reports a character outside the IUPAC nucleotide alphabet.
type BadSymbolError struct {
	Symbol byte
}

func (e *BadSymbolError) Error() string {
	return fmt.Sprintf("dna: bad nucleotide symbol %q", e.Symbol)
}

// nibbles maps a nucleotide code to its 4-bit value. The zero entry is
// ambiguous with 'S', so parsing consults valid first.
var nibbles = [256]uint8{
	'A': 0x1, 'T': 0x8, 'C': 0x2, 'G': 0x4,
	'R': 0x3, 'Y': 0xC, 'K': 0x7, 'M': 0xE,
	'B': 0x5, 'V': 0xA, 'D': 0xB, 'H': 0xD,
	'S': 0x0, 'W': 0x9, 'N': 0x6, 'X': 0xF,
}

var valid = [256]bool{
	'A': true, 'T': true, 'C': true, 'G': true,
	'R': true, 'Y': true, 'K': true, 'M': true,
	'B': true, 'V': true, 'D': true, 'H': true,
	'S': true, 'W': true, 'N': true, 'X': true,
}

var symbols = [16]byte{
	0x0: 'S', 0x1: 'A', 0x2: 'C', 0x3: 'R',
	0x4: 'G', 0x5: 'B', 0x6: 'N', 0x7: 'K',
	0x8: 'T', 0x9: 'W', 0xA: 'V', 0xB: 'D',
	0xC: 'Y', 0xD: 'H', 0xE: 'M', 0xF: 'X',
}

// Strand is a fixed-width nucleotide word. Strands are values; all
// transforms return a new strand. The zero Strand has length 0 and is not a
// valid sequence element.
type Strand struct {
	word   uint64
	length uint8
}

// New parses a strand from text. Its width is len(text), which must be in
// [1, MaxLength]. Lowercase symbols are accepted.
func New(text string) (Strand, error) {
	if len(text) < 1 || len(text) > MaxLength {
		return Strand{}, fmt.Errorf("dna: strand width %d out of range [1, %d]", len(text), MaxLength)
	}
	var word uint64
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if !valid[c] {
			return Strand{}, &BadSymbolError{Symbol: text[i]}
		}
		word = word<<4 | uint64(nibbles[c])
	}
	return Strand{word: word, length: uint8(len(text))}, nil
}

// FromWord builds a strand directly from its raw word. Callers must
// guarantee the word fits in 4*length bits.
func FromWord(word uint64, length int) Strand {
	return Strand{word: word, length: uint8(length)}
}

func (s Strand) Len() int     { return int(s.length) }
func (s Strand) Word() uint64 { return s.word }

// At returns the nucleotide code at the given position.
func (s Strand) At(i int) byte {
	shift := 4 * (uint(s.length) - 1 - uint(i))
	return symbols[(s.word>>shift)&0xF]
}

func (s Strand) String() string {
	var b strings.Builder
	for i := 0; i < int(s.length); i++ {
		b.WriteByte(s.At(i))
	}
	return b.String()
}

// Transposed returns the Watson-Crick complement. Each nibble is reversed in
// place: first odd and even bits swap, then adjacent bit pairs.
func (s Strand) Transposed() Strand {
	w := s.word
	w = (w&0x5555555555555555)<<1 | (w>>1)&0x5555555555555555
	w = (w&0x3333333333333333)<<2 | (w>>2)&0x3333333333333333
	return Strand{word: w, length: s.length}
}

// Mirrored returns the strand with its nucleotide order reversed.
func (s Strand) Mirrored() Strand {
	w := s.word
	w = (w&0x0f0f0f0f0f0f0f0f)<<4 | (w>>4)&0x0f0f0f0f0f0f0f0f
	w = bits.ReverseBytes64(w)
	w >>= 64 - 4*uint(s.length)
	return Strand{word: w, length: s.length}
}

// Inverted composes mirroring and transposition, in either order.
func (s Strand) Inverted() Strand {
	return s.Mirrored().Transposed()
}

// Invariant reports whether the strand equals its own mirror.
func (s Strand) Invariant() bool {
	return s == s.Mirrored()
}

// Canonical returns the smallest of the four similarity transforms of the
// strand by unsigned word value, together with the mirror and transpose
// flags that recover the original from the canonical, and the invariant
// flag. For a mirror-invariant strand the mirror flag is always false.
func (s Strand) Canonical() (canonical Strand, mirror, transpose, invariant bool) {
	canonical = s
	for _, c := range [...]struct {
		strand            Strand
		mirror, transpose bool
	}{
		{s.Mirrored(), true, false},
		{s.Transposed(), false, true},
		{s.Inverted(), true, true},
	} {
		if c.strand.word < canonical.word {
			canonical = c.strand
			mirror, transpose = c.mirror, c.transpose
		}
	}
	invariant = s.Invariant()
	return canonical, mirror, transpose, invariant
}

// Bytes returns the number of bytes a strand of the given width occupies on
// the wire.
func Bytes(length int) int {
	return (length + 1) / 2
}

// Serialize appends the strand's big-endian wire form to buf. Odd widths pad
// the final nibble with zero bits.
func (s Strand) Serialize(buf []byte) []byte {
	n := Bytes(int(s.length))
	w := s.word << (8*uint(n) - 4*uint(s.length))
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, byte(w>>(8*uint(i))))
	}
	return buf
}

// Deserialize reconstructs a strand of the given width from its wire form.
func Deserialize(buf []byte, length int) Strand {
	n := Bytes(length)
	var w uint64
	for i := 0; i < n; i++ {
		w = w<<8 | uint64(buf[i])
	}
	w >>= 8*uint(n) - 4*uint(length)
	return Strand{word: w, length: uint8(length)}
}
