package coff

import "bytes"

// StringTable is the long-name region following the symbol table. The
// buffer excludes the leading 4-byte length word; lookup offsets index
// straight into it.
type StringTable struct {
	buf []byte
	// file offset the table was loaded from,
	// pointer_to_symbol_table + number_of_symbols*18
	off uint32
}

// Offset returns the file offset the table was read from.
func (st *StringTable) Offset() uint32 { return st.off }

// Len returns the byte length of the loaded buffer.
func (st *StringTable) Len() int { return len(st.buf) }

// Lookup returns the NUL-terminated string starting at off, or "" when
// off is at or beyond the end of the buffer.
func (st *StringTable) Lookup(off uint32) string {
	if off >= uint32(len(st.buf)) {
		return ""
	}
	b := st.buf[off:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// cstring truncates b at the first NUL byte.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
