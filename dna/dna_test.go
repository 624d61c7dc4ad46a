package dna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {

	testCases := []struct {
		text string
		word uint64
	}{
		{"A", 0x1},
		{"T", 0x8},
		{"ACGT", 0x1248},
		{"acgt", 0x1248},
		{"ACGTTGCA", 0x12488421},
		{"RYKMBVDH", 0x3C7E5ABD},
		{"SWNX", 0x096F},
		{"AAAAAAAAAAAAAAAA", 0x1111111111111111},
	}

	for i, c := range testCases {
		strand, err := New(c.text)
		require.NoErrorf(t, err, "This should not fail for index %d", i)
		assert.Equalf(t, c.word, strand.Word(), "Incorrect word for index %d", i)
		assert.Equalf(t, len(c.text), strand.Len(), "Incorrect length for index %d", i)
	}
}

func TestNewBadSymbol(t *testing.T) {

	_, err := New("ACGZ")
	require.Error(t, err)
	badSymbol, ok := err.(*BadSymbolError)
	require.True(t, ok, "The error should report the bad symbol")
	assert.Equal(t, byte('Z'), badSymbol.Symbol)

	_, err = New("")
	assert.Error(t, err, "An empty strand should be rejected")

	_, err = New("AAAAAAAAAAAAAAAAA")
	assert.Error(t, err, "A strand beyond the maximum width should be rejected")
}

func TestString(t *testing.T) {

	testCases := []string{
		"A",
		"ACGT",
		"ACGTTGCA",
		"RYKMBVDHSWNX",
		"TTTTGGGGCCCCAAAA",
	}

	for i, text := range testCases {
		strand, err := New(text)
		require.NoErrorf(t, err, "This should not fail for index %d", i)
		assert.Equalf(t, text, strand.String(), "Incorrect round trip for index %d", i)
		for j := 0; j < len(text); j++ {
			assert.Equalf(t, text[j], strand.At(j), "Incorrect nucleotide %d for index %d", j, i)
		}
	}
}

func TestTransposed(t *testing.T) {

	testCases := []struct {
		text       string
		transposed string
	}{
		{"ACGTTGCA", "TGCAACGT"},
		{"AAAAAAAA", "TTTTTTTT"},
		{"RYKM", "YRMK"},
		{"BVDH", "VBHD"},
		{"SWNX", "SWNX"},
	}

	for i, c := range testCases {
		strand, err := New(c.text)
		require.NoErrorf(t, err, "This should not fail for index %d", i)
		expected, err := New(c.transposed)
		require.NoErrorf(t, err, "This should not fail for index %d", i)

		assert.Equalf(t, expected, strand.Transposed(), "Incorrect complement for index %d", i)
		assert.Equalf(t, strand, strand.Transposed().Transposed(), "Complementing twice should be the identity for index %d", i)
	}
}

func TestMirrored(t *testing.T) {

	testCases := []struct {
		text     string
		mirrored string
	}{
		{"AACGTGCA", "ACGTGCAA"},
		{"ACGTTGCA", "ACGTTGCA"},
		{"ACG", "GCA"},
		{"AT", "TA"},
	}

	for i, c := range testCases {
		strand, err := New(c.text)
		require.NoErrorf(t, err, "This should not fail for index %d", i)
		expected, err := New(c.mirrored)
		require.NoErrorf(t, err, "This should not fail for index %d", i)

		assert.Equalf(t, expected, strand.Mirrored(), "Incorrect reversal for index %d", i)
		assert.Equalf(t, strand, strand.Mirrored().Mirrored(), "Reversing twice should be the identity for index %d", i)
	}
}

func TestInvariant(t *testing.T) {

	palindrome, _ := New("ACGTTGCA")
	assert.True(t, palindrome.Invariant())

	plain, _ := New("AACGTGCA")
	assert.False(t, plain.Invariant())
}

func TestCanonical(t *testing.T) {

	testCases := []string{
		"AACGTGCA",
		"TTGCACGT",
		"TGCACGTT",
		"ACGTGCAA",
		"ACGTTGCA",
		"TGCAACGT",
		"AAAAAAAA",
		"TTTTTTTT",
	}

	for i, text := range testCases {
		strand, err := New(text)
		require.NoErrorf(t, err, "This should not fail for index %d", i)
		canonical, mirror, transpose, invariant := strand.Canonical()

		assert.Truef(t, canonical.Word() <= strand.Word(), "The canonical should not exceed the original for index %d", i)
		assert.Equalf(t, invariant, strand.Invariant(), "Incorrect invariant flag for index %d", i)

		recovered := canonical
		if mirror {
			recovered = recovered.Mirrored()
		}
		if transpose {
			recovered = recovered.Transposed()
		}
		assert.Equalf(t, strand, recovered, "The witness flags should recover the original for index %d", i)

		if invariant {
			assert.Falsef(t, mirror, "An invariant strand should not carry a mirror witness for index %d", i)
		}
	}

	// All four transforms of one strand share a canonical form.
	base, _ := New("AACGTGCA")
	expected, _, _, _ := base.Canonical()
	for i, variant := range []Strand{base, base.Mirrored(), base.Transposed(), base.Inverted()} {
		canonical, _, _, _ := variant.Canonical()
		assert.Equalf(t, expected, canonical, "Incorrect canonical for transform %d", i)
	}
}

func TestSerialize(t *testing.T) {

	testCases := []struct {
		text  string
		bytes []byte
	}{
		{"ACG", []byte{0x12, 0x40}},
		{"ACGT", []byte{0x12, 0x48}},
		{"ACGTTGCA", []byte{0x12, 0x48, 0x84, 0x21}},
		{"T", []byte{0x80}},
	}

	for i, c := range testCases {
		strand, err := New(c.text)
		require.NoErrorf(t, err, "This should not fail for index %d", i)

		buf := strand.Serialize(nil)
		assert.Equalf(t, c.bytes, buf, "Incorrect wire form for index %d", i)
		assert.Equalf(t, Bytes(len(c.text)), len(buf), "Incorrect wire size for index %d", i)

		recovered := Deserialize(buf, len(c.text))
		assert.Equalf(t, strand, recovered, "Incorrect round trip for index %d", i)
	}
}
