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
	"fmt"
	"io"
)

// Node is an ordered pair of child pointers. The right child may be null for
// the single-child parents emitted at the right edge of an odd-width level.
// Nodes held by the tree store are always in canonical form.
type Node struct {
	Left  Pointer
	Right Pointer
}

// Mirrored swaps the children and mirror-tags each.
func (n Node) Mirrored() Node {
	return Node{Left: n.Right.Mirrored(), Right: n.Left.Mirrored()}
}

// Transposed transpose-tags both children without swapping.
func (n Node) Transposed() Node {
	return Node{Left: n.Left.Transposed(), Right: n.Right.Transposed()}
}

// Inverted composes mirroring and transposition.
func (n Node) Inverted() Node {
	return n.Mirrored().Transposed()
}

// Invariant reports whether the node equals its own mirror, which holds
// exactly when its children are each other's mirror.
func (n Node) Invariant() bool {
	return n.Left == n.Right.Mirrored()
}

// Equal compares both children modulo the runtime-only invariant bit.
func (n Node) Equal(other Node) bool {
	return n.Left.Equal(other.Left) && n.Right.Equal(other.Right)
}

// less orders nodes lexicographically on the raw packed child words.
func (n Node) less(other Node) bool {
	if n.Left != other.Left {
		return n.Left < other.Left
	}
	return n.Right < other.Right
}

// Canonical returns the lexicographically smallest of the node's four
// similarity transforms, plus the mirror and transpose flags that recover
// the original from the canonical. Ties resolve towards the identity, so a
// mirror-invariant node never reports a mirror witness.
func (n Node) Canonical() (canonical Node, mirror, transpose bool) {
	canonical = n
	for _, c := range [...]struct {
		node              Node
		mirror, transpose bool
	}{
		{n.Mirrored(), true, false},
		{n.Transposed(), false, true},
		{n.Inverted(), true, true},
	} {
		if c.node.less(canonical) {
			canonical = c.node
			mirror, transpose = c.mirror, c.transpose
		}
	}
	return canonical, mirror, transpose
}

func (n Node) String() string {
	format := func(p Pointer) string {
		if p.IsNull() {
			return "empty"
		}
		return fmt.Sprintf("index %d", p.Index())
	}
	return fmt.Sprintf("node<%s, %s>", format(n.Left), format(n.Right))
}

// Bytes returns the node's serialized size.
func (n Node) Bytes() int {
	return n.Left.Bytes() + n.Right.Bytes()
}

// Serialize writes the left pointer, then the right.
func (n Node) Serialize(w io.Writer) error {
	if err := n.Left.Serialize(w); err != nil {
		return err
	}
	return n.Right.Serialize(w)
}

// DeserializeNode reads a node back in compressed form.
func DeserializeNode(r io.Reader) (Node, error) {
	left, err := DeserializePointer(r)
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("%w: truncated node", ErrBadFormat)
		}
		return Node{}, err
	}
	right, err := DeserializePointer(r)
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("%w: truncated node", ErrBadFormat)
		}
		return Node{}, err
	}
	return Node{Left: left, Right: right}, nil
}
