package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	exp := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	mb := make([]int, 64)
	for i := range mb {
		mb[i] = i % 16
	}
	for _, b := range Chunk(mb, 16) {
		assert.Equal(t, exp, b)
	}
}

func TestHexDump(t *testing.T) {
	b := append([]byte("Hello, COFF!"), 0x00, 0x01, 0x02, 0x03, 0xc3)
	rows := HexDump(b, 0x40)
	assert.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "00000040  48 65 6c 6c"))
	assert.Contains(t, rows[0], "|Hello, C")
	assert.True(t, strings.HasPrefix(rows[1], "00000050  c3"))
}
