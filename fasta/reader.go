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

// Package fasta reads single-sequence FASTA files as a stream of
// fixed-width strands, without loading the sequence in memory.
package fasta

import (
	"bufio"
	"io"
	"os"

	"github.com/strandlab/dagseq/dna"
)

const defaultBufferSize = 1 << 20

// Reader yields strands of a fixed width from FASTA input. Header lines
// starting with '>' and all whitespace are skipped; the trailing
// nucleotides that do not fill a whole strand are dropped.
type Reader struct {
	source    *bufio.Reader
	strandLen int
	pending   []byte
}

func NewReader(r io.Reader, strandLen int) *Reader {
	return &Reader{
		source:    bufio.NewReaderSize(r, defaultBufferSize),
		strandLen: strandLen,
		pending:   make([]byte, 0, 2*strandLen),
	}
}

// Read returns the next strand, or io.EOF after the last complete one.
func (r *Reader) Read() (dna.Strand, error) {
	for len(r.pending) < r.strandLen {
		if err := r.fill(); err != nil {
			return dna.Strand{}, err
		}
	}
	strand, err := dna.New(string(r.pending[:r.strandLen]))
	if err != nil {
		return dna.Strand{}, err
	}
	r.pending = r.pending[:copy(r.pending, r.pending[r.strandLen:])]
	return strand, nil
}

// fill appends the next line's nucleotides to the pending buffer, skipping
// headers and whitespace.
func (r *Reader) fill() error {
	line, err := r.source.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return err
	}
	if len(line) > 0 && line[0] == '>' {
		return nil
	}
	for _, c := range line {
		switch c {
		case '\n', '\r', ' ', '\t':
			continue
		default:
			r.pending = append(r.pending, c)
		}
	}
	return nil
}

// File is a Reader bound to an open file.
type File struct {
	*Reader
	file *os.File
}

// Open prepares a strand reader over a FASTA file.
func Open(path string, strandLen int) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{Reader: NewReader(file, strandLen), file: file}, nil
}

func (f *File) Close() error {
	return f.file.Close()
}

// ReadGenome loads a whole FASTA file as a strand slice. Intended for small
// inputs and tests; large files should stream through a Reader.
func ReadGenome(path string, strandLen int) ([]dna.Strand, error) {
	f, err := Open(path, strandLen)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var strands []dna.Strand
	for {
		strand, err := f.Read()
		if err == io.EOF {
			return strands, nil
		}
		if err != nil {
			return nil, err
		}
		strands = append(strands, strand)
	}
}
