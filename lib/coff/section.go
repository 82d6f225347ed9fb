package coff

import (
	"fmt"
	"strconv"
	"strings"
)

// Section characteristics.
const (
	IMAGE_SCN_TYPE_NO_PAD            = 0x00000008
	IMAGE_SCN_CNT_CODE               = 0x00000020
	IMAGE_SCN_CNT_INITIALIZED_DATA   = 0x00000040
	IMAGE_SCN_CNT_UNINITIALIZED_DATA = 0x00000080
	IMAGE_SCN_LNK_INFO               = 0x00000200
	IMAGE_SCN_LNK_REMOVE             = 0x00000800
	IMAGE_SCN_LNK_COMDAT             = 0x00001000
	IMAGE_SCN_GPREL                  = 0x00008000
	IMAGE_SCN_LNK_NRELOC_OVFL        = 0x01000000
	IMAGE_SCN_MEM_DISCARDABLE        = 0x02000000
	IMAGE_SCN_MEM_NOT_CACHED         = 0x04000000
	IMAGE_SCN_MEM_NOT_PAGED          = 0x08000000
	IMAGE_SCN_MEM_SHARED             = 0x10000000
	IMAGE_SCN_MEM_EXECUTE            = 0x20000000
	IMAGE_SCN_MEM_READ               = 0x40000000
	IMAGE_SCN_MEM_WRITE              = 0x80000000
)

// Alignment flags, 14 mutually exclusive values inside IMAGE_SCN_ALIGN_MASK.
const (
	IMAGE_SCN_ALIGN_MASK = 0x00f00000

	IMAGE_SCN_ALIGN_1BYTES    = 0x00100000
	IMAGE_SCN_ALIGN_2BYTES    = 0x00200000
	IMAGE_SCN_ALIGN_4BYTES    = 0x00300000
	IMAGE_SCN_ALIGN_8BYTES    = 0x00400000
	IMAGE_SCN_ALIGN_16BYTES   = 0x00500000
	IMAGE_SCN_ALIGN_32BYTES   = 0x00600000
	IMAGE_SCN_ALIGN_64BYTES   = 0x00700000
	IMAGE_SCN_ALIGN_128BYTES  = 0x00800000
	IMAGE_SCN_ALIGN_256BYTES  = 0x00900000
	IMAGE_SCN_ALIGN_512BYTES  = 0x00a00000
	IMAGE_SCN_ALIGN_1024BYTES = 0x00b00000
	IMAGE_SCN_ALIGN_2048BYTES = 0x00c00000
	IMAGE_SCN_ALIGN_4096BYTES = 0x00d00000
	IMAGE_SCN_ALIGN_8192BYTES = 0x00e00000
)

var alignFlags = [14]uint32{
	IMAGE_SCN_ALIGN_1BYTES,
	IMAGE_SCN_ALIGN_2BYTES,
	IMAGE_SCN_ALIGN_4BYTES,
	IMAGE_SCN_ALIGN_8BYTES,
	IMAGE_SCN_ALIGN_16BYTES,
	IMAGE_SCN_ALIGN_32BYTES,
	IMAGE_SCN_ALIGN_64BYTES,
	IMAGE_SCN_ALIGN_128BYTES,
	IMAGE_SCN_ALIGN_256BYTES,
	IMAGE_SCN_ALIGN_512BYTES,
	IMAGE_SCN_ALIGN_1024BYTES,
	IMAGE_SCN_ALIGN_2048BYTES,
	IMAGE_SCN_ALIGN_4096BYTES,
	IMAGE_SCN_ALIGN_8192BYTES,
}

// rawSectionHeader is the 40-byte on-disk record.
type rawSectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

const sectionHeaderSize = 40

// SectionHeader is a decoded section record with its name resolved.
// Immutable after decode; a section's index in File.Sections is the key
// relocations are filed under.
type SectionHeader struct {
	Name string
	// VirtualSize shares its bytes with the physical address of the
	// section in image files. In a relocatable object it must be 0;
	// SizeOfRawData carries the content length.
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

// Section couples a decoded header with the raw content loaded for it.
type Section struct {
	SectionHeader
	Data []byte
}

// Alignment decodes the 14 alignment flags into a byte count. 0 means
// the header carries no alignment flag at all; an unassigned flag value
// fails with ErrBadAlignment.
func (sh *SectionHeader) Alignment() (n uint32, err error) {
	c := sh.Characteristics & IMAGE_SCN_ALIGN_MASK
	if c == 0 {
		return
	}
	for i, fl := range alignFlags {
		if c == fl {
			n = 1 << uint(i)
			return
		}
	}
	err = fmt.Errorf("%w: section %q characteristics %#08x",
		ErrBadAlignment, sh.Name, sh.Characteristics)
	return
}

// Grouped reports whether the section name carries a $ grouping marker.
func (sh *SectionHeader) Grouped() bool {
	return strings.IndexByte(sh.Name, '$') >= 0
}

// Group splits a grouped name into the target section name and the
// ordering suffix. Both are empty for ungrouped sections.
func (sh *SectionHeader) Group() (key, suffix string) {
	i := strings.IndexByte(sh.Name, '$')
	if i < 0 {
		return
	}
	return sh.Name[:i], sh.Name[i+1:]
}

// resolveSectionName applies the long-name rule: a leading '/' makes the
// rest a decimal string-table offset, anything else is the name itself
// truncated at the first NUL.
func resolveSectionName(raw [8]byte, st *StringTable) (name string, err error) {
	if raw[0] != '/' {
		name = cstring(raw[:])
		return
	}
	var off uint64
	off, err = strconv.ParseUint(cstring(raw[1:]), 10, 32)
	if err != nil {
		err = fmt.Errorf("coff: bad long section name %q: %w", cstring(raw[:]), err)
		return
	}
	name = st.Lookup(uint32(off))
	return
}
