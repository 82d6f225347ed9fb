package util

import (
	"fmt"
	"strings"
)

// Chunk
func Chunk[T any](collection []T, size int) [][]T {
	ret := make([][]T, 0, len(collection)/size+1)
	for i := 0; i < len(collection); i = i + size {
		var bound int
		if i+size < len(collection) {
			bound = i + size
		} else {
			bound = len(collection)
		}
		ret = append(ret, collection[i:bound])
	}
	return ret
}

// HexDump renders b as 16-byte rows with an offset column and an ASCII
// gutter, offsets starting at base.
func HexDump(b []byte, base uint32) []string {
	rows := Chunk(b, 16)
	out := make([]string, 0, len(rows))
	for i, row := range rows {
		var hex, ascii strings.Builder
		for j, c := range row {
			if j == 8 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%02x ", c)
			if c >= 0x20 && c < 0x7f {
				ascii.WriteByte(c)
			} else {
				ascii.WriteByte('.')
			}
		}
		out = append(out, fmt.Sprintf("%08x  %-49s |%s|",
			base+uint32(i*16), hex.String(), ascii.String()))
	}
	return out
}
