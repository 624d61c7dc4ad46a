package fasta

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandlab/dagseq/dna"
)

func readAll(t *testing.T, input string, strandLen int) []dna.Strand {
	reader := NewReader(strings.NewReader(input), strandLen)
	var strands []dna.Strand
	for {
		strand, err := reader.Read()
		if err == io.EOF {
			return strands
		}
		require.NoError(t, err)
		strands = append(strands, strand)
	}
}

func TestRead(t *testing.T) {

	input := ">chr1 test sequence\nACGTTGCAACGT\nTGCA\n"
	strands := readAll(t, input, 8)

	require.Len(t, strands, 2)
	assert.Equal(t, "ACGTTGCA", strands[0].String())
	assert.Equal(t, "ACGTTGCA", strands[1].String(), "Strands should continue across line breaks")
}

func TestReadDropsTrailing(t *testing.T) {

	strands := readAll(t, "ACGTACGTACG\n", 4)

	require.Len(t, strands, 2)
	assert.Equal(t, "ACGT", strands[0].String())
	assert.Equal(t, "ACGT", strands[1].String())
}

func TestReadSkipsNoise(t *testing.T) {

	input := ">header\nAC GT\r\n>interleaved comment\n\nTG\tCA\n"
	strands := readAll(t, input, 8)

	require.Len(t, strands, 1)
	assert.Equal(t, "ACGTTGCA", strands[0].String())
}

func TestReadWithoutFinalNewline(t *testing.T) {

	strands := readAll(t, "ACGTTGCA", 8)

	require.Len(t, strands, 1)
	assert.Equal(t, "ACGTTGCA", strands[0].String())
}

func TestReadBadSymbol(t *testing.T) {

	reader := NewReader(strings.NewReader("ACGTQGCA\n"), 8)
	_, err := reader.Read()
	require.Error(t, err)
	_, ok := err.(*dna.BadSymbolError)
	assert.True(t, ok, "The reader should surface the bad symbol")
}

func TestReadLowercase(t *testing.T) {

	strands := readAll(t, "acgttgca\n", 8)

	require.Len(t, strands, 1)
	assert.Equal(t, "ACGTTGCA", strands[0].String())
}
