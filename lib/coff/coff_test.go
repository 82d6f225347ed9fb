package coff

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSection describes one section of a synthetic object.
type testSection struct {
	name        string
	data        []byte
	relocs      []Relocation
	chars       uint32
	virtualSize uint32
	rawSize     uint32 // overrides len(data) when nonzero
	rawPtrZero  bool
}

// testObject assembles a valid little-endian object image in memory,
// laid out header, section headers, section data, relocations, symbol
// table, string table.
type testObject struct {
	machine  Machine
	sections []testSection
	symbols  []rawSymbol
	strtab   []byte
}

func (o *testObject) build() []byte {
	le := binary.LittleEndian
	n := len(o.sections)
	off := uint32(fileHeaderSize + n*sectionHeaderSize)

	dataPtr := make([]uint32, n)
	for i, s := range o.sections {
		if len(s.data) > 0 {
			dataPtr[i] = off
			off += uint32(len(s.data))
		}
	}
	relocPtr := make([]uint32, n)
	for i, s := range o.sections {
		if len(s.relocs) > 0 {
			relocPtr[i] = off
			off += uint32(len(s.relocs)) * relocationSize
		}
	}
	symPtr := off

	var buf bytes.Buffer
	hdr := FileHeader{
		Machine:              o.machine,
		NumberOfSections:     uint16(n),
		PointerToSymbolTable: symPtr,
		NumberOfSymbols:      uint32(len(o.symbols)),
	}
	binary.Write(&buf, le, hdr)
	for i, s := range o.sections {
		var raw rawSectionHeader
		copy(raw.Name[:], s.name)
		raw.VirtualSize = s.virtualSize
		raw.SizeOfRawData = uint32(len(s.data))
		if s.rawSize != 0 {
			raw.SizeOfRawData = s.rawSize
		}
		raw.PointerToRawData = dataPtr[i]
		if s.rawPtrZero {
			raw.PointerToRawData = 0
		}
		raw.PointerToRelocations = relocPtr[i]
		raw.NumberOfRelocations = uint16(len(s.relocs))
		raw.Characteristics = s.chars
		binary.Write(&buf, le, raw)
	}
	for _, s := range o.sections {
		buf.Write(s.data)
	}
	for _, s := range o.sections {
		binary.Write(&buf, le, s.relocs)
	}
	for _, sym := range o.symbols {
		binary.Write(&buf, le, sym)
	}
	binary.Write(&buf, le, uint32(4+len(o.strtab)))
	buf.Write(o.strtab)
	return buf.Bytes()
}

func shortName(s string) (b [8]byte) {
	copy(b[:], s)
	return
}

func longName(off uint32) (b [8]byte) {
	binary.LittleEndian.PutUint32(b[4:], off)
	return
}

func TestReadSimpleObject(t *testing.T) {
	content := []byte{
		0x55, 0x48, 0x89, 0xe5, 0xb8, 0x2a, 0x00, 0x00,
		0x00, 0x5d, 0xc3, 0x90, 0x90, 0x90, 0x90, 0x90,
	}
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		sections: []testSection{{
			name:  ".text",
			data:  content,
			chars: IMAGE_SCN_CNT_CODE | IMAGE_SCN_ALIGN_16BYTES | IMAGE_SCN_MEM_EXECUTE | IMAGE_SCN_MEM_READ,
		}},
		symbols: []rawSymbol{{
			Name:          shortName("main"),
			SectionNumber: 1,
			StorageClass:  uint8(IMAGE_SYM_CLASS_EXTERNAL),
		}},
	}

	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)

	assert.Equal(t, IMAGE_FILE_MACHINE_AMD64, f.Header.Machine)
	require.Len(t, f.Sections, int(f.Header.NumberOfSections))
	require.Len(t, f.Symbols, int(f.Header.NumberOfSymbols))

	sec := f.Sections[0]
	assert.Equal(t, ".text", sec.Name)
	assert.Equal(t, content, sec.Data)
	assert.Empty(t, f.Relocations)

	sym := f.Symbols[0]
	assert.Equal(t, "main", sym.Name)
	assert.Equal(t, uint32(0), sym.Value)
	assert.Equal(t, int16(1), sym.SectionNumber)
	assert.Equal(t, IMAGE_SYM_CLASS_EXTERNAL, sym.StorageClass)
	assert.Equal(t, uint8(0), sym.NumberOfAuxSymbols)
}

func TestReadUnknownMachine(t *testing.T) {
	for _, m := range []Machine{0xffff, 0x0} {
		o := testObject{machine: m}
		f, err := Read(bytes.NewReader(o.build()))
		assert.ErrorIs(t, err, ErrUnknownMachine)
		assert.Nil(t, f)
	}
}

func TestReadInvalidVirtualSize(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		sections: []testSection{
			{name: ".text", data: []byte{0xc3}},
			{name: ".data", data: []byte{1, 2, 3}, virtualSize: 3},
		},
	}
	f, err := Read(bytes.NewReader(o.build()))
	assert.ErrorIs(t, err, ErrInvalidVirtualSize)
	assert.Nil(t, f)
}

func TestReadLongSectionName(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_I386,
		sections: []testSection{
			{name: "/4", data: []byte{1}},
			{name: ".data", data: []byte{2}},
		},
		strtab: []byte("foo\x00.debug$S.long.name\x00"),
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	assert.Equal(t, ".debug$S.long.name", f.Sections[0].Name)
	assert.Equal(t, ".data", f.Sections[1].Name)
}

func TestReadLongSymbolName(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		symbols: []rawSymbol{{
			Name:         longName(0),
			StorageClass: uint8(IMAGE_SYM_CLASS_STATIC),
		}},
		strtab: []byte("foo\x00"),
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	require.Len(t, f.Symbols, 1)
	assert.Equal(t, "foo", f.Symbols[0].Name)
}

func TestReadRelocations(t *testing.T) {
	relocs := []Relocation{
		{VirtualAddress: 0x4, SymbolTableIndex: 1, Type: IMAGE_REL_AMD64_REL32},
		{VirtualAddress: 0xc, SymbolTableIndex: 0, Type: IMAGE_REL_AMD64_ADDR64},
	}
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		sections: []testSection{
			{name: ".text", data: make([]byte, 16), relocs: relocs},
			{name: ".data", data: []byte{1, 2, 3, 4}},
		},
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	require.Len(t, f.Relocations, 1)
	assert.Equal(t, relocs, f.Relocations[0])
	_, ok := f.Relocations[1]
	assert.False(t, ok, "zero-relocation section must have no entry")
}

func TestReadUninitializedSection(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		sections: []testSection{
			{name: ".bss", rawSize: 64, rawPtrZero: true, chars: IMAGE_SCN_CNT_UNINITIALIZED_DATA},
			{name: ".empty"},
		},
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	assert.Equal(t, uint32(64), f.Sections[0].SizeOfRawData)
	assert.Empty(t, f.Sections[0].Data)
	assert.Empty(t, f.Sections[1].Data)
}

func TestReadUnknownStorageClass(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		symbols: []rawSymbol{{
			Name:         shortName("weird"),
			StorageClass: 0x2a,
		}},
	}
	f, err := Read(bytes.NewReader(o.build()))
	assert.ErrorIs(t, err, ErrUnknownStorageClass)
	assert.Nil(t, f)
}

func TestReadAuxRecordsKeptRaw(t *testing.T) {
	// the aux payload carries arbitrary bytes in every field; it must
	// neither trip storage-class validation nor shrink the table
	var aux rawSymbol
	copy(aux.Name[:], "file.c\x00\x00")
	aux.StorageClass = 0xee

	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		symbols: []rawSymbol{
			{Name: shortName(".file"), StorageClass: uint8(IMAGE_SYM_CLASS_FILE), NumberOfAuxSymbols: 1},
			aux,
			{Name: shortName("after"), StorageClass: uint8(IMAGE_SYM_CLASS_STATIC)},
		},
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	require.Len(t, f.Symbols, 3)
	assert.Equal(t, uint8(1), f.Symbols[0].NumberOfAuxSymbols)
	assert.Equal(t, "after", f.Symbols[2].Name)
}

func TestReadTruncated(t *testing.T) {
	o := testObject{
		machine:  IMAGE_FILE_MACHINE_AMD64,
		sections: []testSection{{name: ".text", data: make([]byte, 32)}},
	}
	img := o.build()

	_, err := Read(bytes.NewReader(img[:10]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// cut inside the section data
	_, err = Read(bytes.NewReader(img[:fileHeaderSize+sectionHeaderSize+8]))
	assert.Error(t, err)
}

func TestSectionLookup(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		sections: []testSection{
			{name: ".text", data: []byte{0xc3}},
			{name: ".data", data: []byte{1}},
		},
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	require.NotNil(t, f.Section(".data"))
	assert.Equal(t, ".data", f.Section(".data").Name)
	assert.Nil(t, f.Section(".rdata"))
}

func TestStringTableOffsetRecorded(t *testing.T) {
	o := testObject{
		machine: IMAGE_FILE_MACHINE_AMD64,
		symbols: []rawSymbol{{Name: shortName("a"), StorageClass: uint8(IMAGE_SYM_CLASS_EXTERNAL)}},
		strtab:  []byte("unused\x00"),
	}
	f, err := Read(bytes.NewReader(o.build()))
	require.NoError(t, err)
	want := f.Header.PointerToSymbolTable + f.Header.NumberOfSymbols*symbolSize
	assert.Equal(t, want, f.StringTable.Offset())
	assert.Equal(t, 7, f.StringTable.Len())
}

func TestMachineString(t *testing.T) {
	assert.Equal(t, "amd64", IMAGE_FILE_MACHINE_AMD64.String())
	assert.Equal(t, "386", IMAGE_FILE_MACHINE_I386.String())
	assert.Equal(t, "machine(0xffff)", Machine(0xffff).String())
}
