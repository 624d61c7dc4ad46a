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

package dag

import (
	"errors"
	"io"
	"time"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/strandlab/dagseq/dna"
	"github.com/strandlab/dagseq/log"
)

// ErrEmptyInput signals a sequence with no strands; a tree needs at least
// one leaf.
var ErrEmptyInput = errors.New("dag: empty input sequence")

// DefaultSegmentSize is the number of strands reduced to a single subtree
// root before the next stretch of input is consumed. It bounds the size of
// the working layers independently of the input size.
const DefaultSegmentSize = 1 << 10

// StrandReader is the synchronous source of fixed-width strands consumed by
// the constructor. Read returns io.EOF after the last strand.
type StrandReader interface {
	Read() (dna.Strand, error)
}

// SliceReader adapts an in-memory strand sequence to the StrandReader
// interface.
type SliceReader struct {
	strands []dna.Strand
	next    int
}

func NewSliceReader(strands []dna.Strand) *SliceReader {
	return &SliceReader{strands: strands}
}

func (r *SliceReader) Read() (dna.Strand, error) {
	if r.next >= len(r.strands) {
		return dna.Strand{}, io.EOF
	}
	s := r.strands[r.next]
	r.next++
	return s, nil
}

// Constructor builds a fully canonicalized, deduplicated tree into its
// target store. One dedup map per layer assigns indices in first-occurrence
// order of the canonical keys; input is consumed segment-at-a-time so the
// working state stays bounded.
type Constructor struct {
	tree        *Tree
	leaves      map[dna.Strand]uint64
	nodes       []map[Node]uint64
	roots       []Pointer
	segmentSize int

	reduceTime metrics.Timer
}

// NewConstructor prepares a constructor targeting an empty tree.
func NewConstructor(tree *Tree) *Constructor {
	reduceTime := metrics.NewTimer()
	metrics.Register("build.reduce", reduceTime)
	return &Constructor{
		tree:        tree,
		leaves:      make(map[dna.Strand]uint64),
		segmentSize: DefaultSegmentSize,
		reduceTime:  reduceTime,
	}
}

// SetSegmentSize overrides the number of strands per subtree segment.
func (c *Constructor) SetSegmentSize(size int) {
	if size > 0 {
		c.segmentSize = size
	}
}

// Build consumes the reader to exhaustion and reduces the accumulated
// segment roots into the tree root.
func (c *Constructor) Build(r StrandReader) (Pointer, error) {
	segment := make([]dna.Strand, 0, c.segmentSize)
	count := 0

	for {
		strand, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Null, err
		}
		segment = append(segment, strand)
		count++
		if len(segment) == c.segmentSize {
			if err := c.reduceSegment(segment); err != nil {
				return Null, err
			}
			segment = segment[:0]
		}
	}
	if len(segment) > 0 {
		if err := c.reduceSegment(segment); err != nil {
			return Null, err
		}
	}
	if len(c.roots) == 0 {
		return Null, ErrEmptyInput
	}

	log.Debugf("Reduced %d strands into %d segment roots", count, len(c.roots))
	root, err := c.reduceRoots()
	if err != nil {
		return Null, err
	}
	c.tree.root = root
	return root, nil
}

// emplaceLeaf stores the canonical form of a strand, if new, and returns an
// annotated pointer that recovers the original.
func (c *Constructor) emplaceLeaf(leaf dna.Strand) (Pointer, error) {
	canonical, mirror, transpose, invariant := leaf.Canonical()
	index, ok := c.leaves[canonical]
	if !ok {
		index = uint64(len(c.tree.leaves))
		if index > MaxIndex {
			return Null, ErrCapacity
		}
		c.leaves[canonical] = index
		c.tree.emplaceLeaf(canonical)
	}
	return NewPointer(index, mirror, transpose, invariant), nil
}

// emplaceNode stores the canonical form of the node over the two child
// pointers, if new, and returns the annotated pointer referring to it. Pass
// Null as the right child for the single-child parents at the right edge of
// an odd-width level.
func (c *Constructor) emplaceNode(layer int, left, right Pointer) (Pointer, error) {
	for layer >= len(c.nodes) {
		c.nodes = append(c.nodes, make(map[Node]uint64))
		c.tree.addLayer()
	}

	raw := Node{Left: left, Right: right}
	canonical, mirror, transpose := raw.Canonical()
	invariant := raw.Invariant()

	index, ok := c.nodes[layer][canonical]
	if !ok {
		index = uint64(len(c.tree.nodes[layer]))
		if index > MaxIndex {
			return Null, ErrCapacity
		}
		c.nodes[layer][canonical] = index
		c.tree.emplaceNode(layer, canonical)
	}
	return NewPointer(index, mirror, transpose, invariant), nil
}

// reduceLevel folds a level of pointers pairwise into pointers one layer
// up, emitting a single-child parent for an odd trailing element.
func (c *Constructor) reduceLevel(level []Pointer, layer int) ([]Pointer, error) {
	next := make([]Pointer, 0, len(level)/2+len(level)%2)
	err := foreachPair(level,
		func(left, right Pointer) error {
			p, err := c.emplaceNode(layer, left, right)
			if err != nil {
				return err
			}
			next = append(next, p)
			return nil
		},
		func(last Pointer) error {
			p, err := c.emplaceNode(layer, last, Null)
			if err != nil {
				return err
			}
			next = append(next, p)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// reduceSegment reduces a stretch of strands to a single subtree root. The
// subtree is folded up to the current maximum layer even when a single
// pointer remains earlier, so that every segment root lives at the same
// height.
func (c *Constructor) reduceSegment(segment []dna.Strand) error {
	ts := time.Now()
	defer func() { c.reduceTime.UpdateSince(ts) }()

	level := make([]Pointer, 0, len(segment)/2+len(segment)%2)
	err := foreachPairStrands(segment,
		func(left, right dna.Strand) error {
			lp, err := c.emplaceLeaf(left)
			if err != nil {
				return err
			}
			rp, err := c.emplaceLeaf(right)
			if err != nil {
				return err
			}
			p, err := c.emplaceNode(0, lp, rp)
			if err != nil {
				return err
			}
			level = append(level, p)
			return nil
		},
		func(last dna.Strand) error {
			lp, err := c.emplaceLeaf(last)
			if err != nil {
				return err
			}
			p, err := c.emplaceNode(0, lp, Null)
			if err != nil {
				return err
			}
			level = append(level, p)
			return nil
		})
	if err != nil {
		return err
	}

	for layer := 1; len(level) > 1 || layer < len(c.nodes); layer++ {
		if level, err = c.reduceLevel(level, layer); err != nil {
			return err
		}
	}
	c.roots = append(c.roots, level[0])
	return nil
}

// reduceRoots folds the accumulated segment roots, continuing to grow new
// layers, until a single pointer remains.
func (c *Constructor) reduceRoots() (Pointer, error) {
	level := c.roots
	for layer := len(c.nodes); len(level) > 1; layer++ {
		var err error
		if level, err = c.reduceLevel(level, layer); err != nil {
			return Null, err
		}
	}
	return level[0], nil
}

// foreachPair walks adjacent pairs of a pointer level, invoking the binary
// handler for each complete pair and the unary handler for an odd trailing
// element.
func foreachPair(level []Pointer, pair func(left, right Pointer) error, last func(last Pointer) error) error {
	i := 0
	for ; i+1 < len(level); i += 2 {
		if err := pair(level[i], level[i+1]); err != nil {
			return err
		}
	}
	if i < len(level) {
		return last(level[i])
	}
	return nil
}

func foreachPairStrands(strands []dna.Strand, pair func(left, right dna.Strand) error, last func(last dna.Strand) error) error {
	i := 0
	for ; i+1 < len(strands); i += 2 {
		if err := pair(strands[i], strands[i+1]); err != nil {
			return err
		}
	}
	if i < len(strands) {
		return last(strands[i])
	}
	return nil
}

// Build constructs a tree for strands of the given width from the reader.
func Build(r StrandReader, leafLen int) (*Tree, error) {
	tree := NewTree(leafLen)
	if _, err := NewConstructor(tree).Build(r); err != nil {
		return nil, err
	}
	return tree, nil
}

// BuildFromSlice constructs a tree from an in-memory sequence. The strand
// width is taken from the first element.
func BuildFromSlice(strands []dna.Strand) (*Tree, error) {
	if len(strands) == 0 {
		return nil, ErrEmptyInput
	}
	return Build(NewSliceReader(strands), strands[0].Len())
}
