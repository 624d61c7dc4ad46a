package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintAsBytes(t *testing.T) {

	assert.Equal(t, []byte{0x01, 0x02}, Uint16AsBytes(0x0102))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, Uint32AsBytes(0x01020304))
	assert.Equal(t, []byte{0, 0, 0, 0, 0x01, 0x02, 0x03, 0x04}, Uint64AsBytes(0x01020304))
	assert.Equal(t, uint64(0x01020304), BytesAsUint64(Uint64AsBytes(0x01020304)))
}

func TestReadWriteUint64(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, WriteUint64(&buf, 0xdeadbeef))

	var value uint64
	require.NoError(t, ReadUint64(&buf, &value))
	assert.Equal(t, uint64(0xdeadbeef), value)

	err := ReadUint64(&buf, &value)
	assert.Error(t, err, "An empty reader should not yield an integer")
}
