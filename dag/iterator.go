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

import "github.com/strandlab/dagseq/dna"

// leafLayer marks stack frames whose pointer references a strand rather
// than a node.
const leafLayer = -1

type frame struct {
	layer   int
	current Pointer
}

// Iterator walks the denoted sequence in order using an explicit stack of
// (layer, pointer) frames. Between calls to Next the top frame, if any,
// always references a leaf.
type Iterator struct {
	tree  *Tree
	stack []frame
}

// Iterator returns an in-order iterator over the tree's strands.
func (t *Tree) Iterator() *Iterator {
	it := &Iterator{tree: t}
	if t.Depth() > 0 {
		it.stack = append(it.stack, frame{layer: t.Depth() - 1, current: t.root})
		it.descend()
	}
	return it
}

// Next returns the next strand of the sequence, or false when exhausted.
func (it *Iterator) Next() (dna.Strand, bool) {
	if len(it.stack) == 0 {
		return dna.Strand{}, false
	}
	top := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	leaf := it.tree.AccessLeaf(top.current)
	it.descend()
	return leaf, true
}

// descend expands node frames until a leaf tops the stack. Children are
// pushed right before left so that the left child pops first; a mirrored
// pointer reverses that order. Each child inherits the parent's transform
// annotations; null children are skipped.
func (it *Iterator) descend() {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		if top.layer == leafLayer {
			return
		}
		it.stack = it.stack[:len(it.stack)-1]

		node := it.tree.AccessNode(top.layer, top.current)
		mirror := top.current.IsMirrored()
		transpose := top.current.IsTransposed()

		push := func(child Pointer) {
			if child.IsNull() {
				return
			}
			it.stack = append(it.stack, frame{
				layer:   top.layer - 1,
				current: child.apply(mirror, transpose),
			})
		}

		if mirror {
			push(node.Left)
			push(node.Right)
		} else {
			push(node.Right)
			push(node.Left)
		}
	}
}
