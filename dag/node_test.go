package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeTransforms(t *testing.T) {

	left := NewPointer(1, false, false, false)
	right := NewPointer(2, false, true, false)
	n := Node{Left: left, Right: right}

	mirrored := n.Mirrored()
	assert.Equal(t, right.Mirrored(), mirrored.Left, "Mirroring should swap the children and tag each")
	assert.Equal(t, left.Mirrored(), mirrored.Right, "Mirroring should swap the children and tag each")
	assert.Equal(t, n, mirrored.Mirrored(), "Mirroring twice should be the identity")

	transposed := n.Transposed()
	assert.Equal(t, left.Transposed(), transposed.Left, "Transposing should tag both children in place")
	assert.Equal(t, right.Transposed(), transposed.Right, "Transposing should tag both children in place")
	assert.Equal(t, n, transposed.Transposed(), "Transposing twice should be the identity")

	assert.Equal(t, n.Mirrored().Transposed(), n.Inverted())
	assert.Equal(t, n, n.Inverted().Inverted(), "Inverting twice should be the identity")
}

func TestNodeInvariant(t *testing.T) {

	p := NewPointer(5, false, false, false)

	assert.True(t, Node{Left: p, Right: p.Mirrored()}.Invariant())
	assert.False(t, Node{Left: p, Right: p}.Invariant())
	assert.False(t, Node{Left: p, Right: Null}.Invariant(), "A single-child node is not its own mirror")

	invariantChild := NewPointer(5, false, false, true)
	assert.True(t, Node{Left: invariantChild, Right: invariantChild}.Invariant(),
		"Two equal invariant children mirror into each other")
}

func TestNodeCanonical(t *testing.T) {

	testCases := []Node{
		{Left: NewPointer(0, false, false, false), Right: NewPointer(0, false, true, false)},
		{Left: NewPointer(3, true, true, false), Right: NewPointer(1, true, false, false)},
		{Left: NewPointer(2, false, true, false), Right: Null},
		{Left: NewPointer(9, false, false, true), Right: NewPointer(4, true, true, false)},
	}

	for i, n := range testCases {
		canonical, mirror, transpose := n.Canonical()

		candidates := []Node{n, n.Mirrored(), n.Transposed(), n.Inverted()}
		for _, candidate := range candidates {
			assert.Falsef(t, candidate.less(canonical), "The canonical should be minimal for index %d", i)
		}

		recovered := canonical
		if mirror {
			recovered = recovered.Mirrored()
		}
		if transpose {
			recovered = recovered.Transposed()
		}
		assert.Equalf(t, n, recovered, "The witness flags should recover the original for index %d", i)
	}

	// All four transforms share the same canonical form.
	n := testCases[0]
	expected, _, _ := n.Canonical()
	for i, variant := range []Node{n, n.Mirrored(), n.Transposed(), n.Inverted()} {
		canonical, _, _ := variant.Canonical()
		assert.Equalf(t, expected, canonical, "Incorrect canonical for transform %d", i)
	}
}

func TestNodeCanonicalInvariant(t *testing.T) {

	// A mirror-invariant node ties with its own mirror; the identity must
	// win so that no mirror witness leaks into the referring pointer.
	p := NewPointer(6, false, true, false)
	n := Node{Left: p, Right: p.Mirrored()}

	canonical, mirror, transpose := n.Canonical()
	assert.Equal(t, n.Transposed(), canonical)
	assert.False(t, mirror, "An invariant node should not carry a mirror witness")
	assert.True(t, transpose)
}
