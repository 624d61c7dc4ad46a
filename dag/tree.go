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

// Package dag implements a shared balanced binary tree over fixed-width
// nucleotide strands. Subtrees that are equal under any combination of
// mirroring and transposition share one physical node, referenced through
// annotated pointers; the result is a strictly layered directed acyclic
// graph.
package dag

import (
	"github.com/strandlab/dagseq/dag/cache"
	"github.com/strandlab/dagseq/dna"
	"github.com/strandlab/dagseq/util"
)

// Tree owns the deduplicated leaves and the per-layer node vectors of one
// shared tree. Layer 0 holds the parents of leaves; the topmost layer holds
// the single node named by the root pointer. Nodes and leaves are stored in
// canonical form and never mutated, except for whole-layer rewiring during
// a frequency sort.
type Tree struct {
	leaves  []dna.Strand
	nodes   [][]Node
	root    Pointer
	leafLen int

	counts cache.Cache
}

// NewTree returns an empty tree for strands of the given width. It is only
// useful as the target of a Constructor or deserialization.
func NewTree(leafLen int) *Tree {
	return &Tree{leafLen: leafLen}
}

// SetCache installs a child-count cache consulted by Children. Install one
// before driving random access over a large tree; without it every lookup
// walks its full subtree.
func (t *Tree) SetCache(c cache.Cache) {
	t.counts = c
}

// Root returns the pointer naming the single node of the topmost layer.
func (t *Tree) Root() Pointer { return t.root }

// Depth returns the number of internal layers.
func (t *Tree) Depth() int { return len(t.nodes) }

// Width returns the number of strands the tree denotes.
func (t *Tree) Width() uint64 {
	return t.Children(len(t.nodes)-1, t.root)
}

// LeafLen returns the strand width in nucleotides.
func (t *Tree) LeafLen() int { return t.leafLen }

func (t *Tree) LeafCount() int { return len(t.leaves) }

// NodeCount returns the total number of nodes across all layers.
func (t *Tree) NodeCount() int {
	sum := 0
	for _, layer := range t.nodes {
		sum += len(layer)
	}
	return sum
}

// LayerSize returns the number of nodes in one layer.
func (t *Tree) LayerSize(layer int) int {
	return len(t.nodes[layer])
}

// AccessLeaf fetches the strand referenced by a leaf pointer, applying its
// transform annotations.
func (t *Tree) AccessLeaf(p Pointer) dna.Strand {
	leaf := t.leaves[p.Index()]
	if p.IsMirrored() {
		leaf = leaf.Mirrored()
	}
	if p.IsTransposed() {
		leaf = leaf.Transposed()
	}
	return leaf
}

// AccessNode fetches the node referenced within the given layer. The caller
// applies the pointer's transform annotations.
func (t *Tree) AccessNode(layer int, p Pointer) Node {
	return t.nodes[layer][p.Index()]
}

func (t *Tree) addLayer() {
	t.nodes = append(t.nodes, nil)
}

func (t *Tree) emplaceLeaf(leaf dna.Strand) {
	t.leaves = append(t.leaves, leaf)
}

func (t *Tree) emplaceNode(layer int, node Node) {
	t.nodes[layer] = append(t.nodes[layer], node)
}

// positionBytes packs a (layer, index) pair into a cache key.
func positionBytes(layer int, index uint64) []byte {
	b := make([]byte, 0, 6)
	b = append(b, util.Uint16AsBytes(uint16(layer))...)
	b = append(b, util.Uint32AsBytes(uint32(index))...)
	return b
}

// Children returns the number of leaves in the subtree referenced by the
// pointer within the given layer. Mirroring and transposition do not change
// a subtree's size, so the count depends on the index alone and is shared
// through the cache when one is installed.
func (t *Tree) Children(layer int, p Pointer) uint64 {
	if p.IsNull() {
		return 0
	}
	node := t.AccessNode(layer, p)
	if layer == 0 {
		var count uint64
		if !node.Left.IsNull() {
			count++
		}
		if !node.Right.IsNull() {
			count++
		}
		return count
	}

	var key []byte
	if t.counts != nil {
		key = positionBytes(layer, p.Index())
		if count, ok := t.counts.Get(key); ok {
			return count
		}
	}
	count := t.Children(layer-1, node.Left) + t.Children(layer-1, node.Right)
	if t.counts != nil {
		t.counts.Put(key, count)
	}
	return count
}

// Index returns the strand at the given position in the denoted sequence.
// The walk keeps the accumulated mirror and transpose parities in the
// current pointer; a mirrored pointer treats its node as (right, left)
// before the left/right split. Iteration over many positions should prefer
// the iterator, which avoids the repeated child counting done here.
// Precondition: index < Width().
func (t *Tree) Index(index uint64) dna.Strand {
	current := t.root

	for layer := len(t.nodes) - 1; layer > 0; layer-- {
		node := t.AccessNode(layer, current)
		left, right := node.Left, node.Right
		if current.IsMirrored() {
			left, right = right, left
		}

		next := right
		if size := t.Children(layer-1, left); index < size {
			next = left
		} else {
			index -= size
		}
		current = next.apply(current.IsMirrored(), current.IsTransposed())
	}

	node := t.AccessNode(0, current)
	left, right := node.Left, node.Right
	if current.IsMirrored() {
		left, right = right, left
	}

	leaf := right
	if !left.IsNull() && index == 0 {
		leaf = left
	}
	return t.AccessLeaf(leaf.apply(current.IsMirrored(), current.IsTransposed()))
}

// Bytes returns the size of the serialized container in bytes.
func (t *Tree) Bytes() int {
	memory := t.root.Bytes() + 8 + len(t.leaves)*dna.Bytes(t.leafLen)
	for _, layer := range t.nodes {
		memory += 8
		for _, node := range layer {
			memory += node.Bytes()
		}
	}
	return memory
}

// Equal reports structural identity: same leaves, same layers, and
// pointerwise-equal nodes modulo the runtime-only invariant bit.
func (t *Tree) Equal(other *Tree) bool {
	if len(t.leaves) != len(other.leaves) || len(t.nodes) != len(other.nodes) {
		return false
	}
	if !t.root.Equal(other.root) {
		return false
	}
	for i, leaf := range t.leaves {
		if leaf != other.leaves[i] {
			return false
		}
	}
	for layer := range t.nodes {
		if len(t.nodes[layer]) != len(other.nodes[layer]) {
			return false
		}
		for i, node := range t.nodes[layer] {
			if !node.Equal(other.nodes[layer][i]) {
				return false
			}
		}
	}
	return true
}
