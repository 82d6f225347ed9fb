package coff

import "fmt"

// Relocation is one fixed 10-byte relocation record.
type Relocation struct {
	VirtualAddress   uint32
	SymbolTableIndex uint32
	Type             uint16
}

const relocationSize = 10

// amd64 relocation types.
const (
	IMAGE_REL_AMD64_ABSOLUTE = 0x0000
	IMAGE_REL_AMD64_ADDR64   = 0x0001
	IMAGE_REL_AMD64_ADDR32   = 0x0002
	IMAGE_REL_AMD64_ADDR32NB = 0x0003
	IMAGE_REL_AMD64_REL32    = 0x0004
	IMAGE_REL_AMD64_REL32_1  = 0x0005
	IMAGE_REL_AMD64_REL32_2  = 0x0006
	IMAGE_REL_AMD64_REL32_3  = 0x0007
	IMAGE_REL_AMD64_REL32_4  = 0x0008
	IMAGE_REL_AMD64_REL32_5  = 0x0009
	IMAGE_REL_AMD64_SECTION  = 0x000a
	IMAGE_REL_AMD64_SECREL   = 0x000b
	IMAGE_REL_AMD64_SECREL7  = 0x000c
	IMAGE_REL_AMD64_TOKEN    = 0x000d
	IMAGE_REL_AMD64_SREL32   = 0x000e
	IMAGE_REL_AMD64_PAIR     = 0x000f
	IMAGE_REL_AMD64_SSPAN32  = 0x0010
)

// i386 relocation types.
const (
	IMAGE_REL_I386_ABSOLUTE = 0x0000
	IMAGE_REL_I386_DIR16    = 0x0001
	IMAGE_REL_I386_REL16    = 0x0002
	IMAGE_REL_I386_DIR32    = 0x0006
	IMAGE_REL_I386_DIR32NB  = 0x0007
	IMAGE_REL_I386_SEG12    = 0x0009
	IMAGE_REL_I386_SECTION  = 0x000a
	IMAGE_REL_I386_SECREL   = 0x000b
	IMAGE_REL_I386_TOKEN    = 0x000c
	IMAGE_REL_I386_SECREL7  = 0x000d
	IMAGE_REL_I386_REL32    = 0x0014
)

// arm64 relocation types.
const (
	IMAGE_REL_ARM64_ABSOLUTE       = 0x0000
	IMAGE_REL_ARM64_ADDR32         = 0x0001
	IMAGE_REL_ARM64_ADDR32NB       = 0x0002
	IMAGE_REL_ARM64_BRANCH26       = 0x0003
	IMAGE_REL_ARM64_PAGEBASE_REL21 = 0x0004
	IMAGE_REL_ARM64_REL21          = 0x0005
	IMAGE_REL_ARM64_PAGEOFFSET_12A = 0x0006
	IMAGE_REL_ARM64_PAGEOFFSET_12L = 0x0007
	IMAGE_REL_ARM64_SECREL         = 0x0008
	IMAGE_REL_ARM64_SECREL_LOW12A  = 0x0009
	IMAGE_REL_ARM64_SECREL_HIGH12A = 0x000a
	IMAGE_REL_ARM64_SECREL_LOW12L  = 0x000b
	IMAGE_REL_ARM64_TOKEN          = 0x000c
	IMAGE_REL_ARM64_SECTION        = 0x000d
	IMAGE_REL_ARM64_ADDR64         = 0x000e
	IMAGE_REL_ARM64_BRANCH19       = 0x000f
)

var relAMD64Names = map[uint16]string{
	IMAGE_REL_AMD64_ABSOLUTE: "ABSOLUTE",
	IMAGE_REL_AMD64_ADDR64:   "ADDR64",
	IMAGE_REL_AMD64_ADDR32:   "ADDR32",
	IMAGE_REL_AMD64_ADDR32NB: "ADDR32NB",
	IMAGE_REL_AMD64_REL32:    "REL32",
	IMAGE_REL_AMD64_REL32_1:  "REL32_1",
	IMAGE_REL_AMD64_REL32_2:  "REL32_2",
	IMAGE_REL_AMD64_REL32_3:  "REL32_3",
	IMAGE_REL_AMD64_REL32_4:  "REL32_4",
	IMAGE_REL_AMD64_REL32_5:  "REL32_5",
	IMAGE_REL_AMD64_SECTION:  "SECTION",
	IMAGE_REL_AMD64_SECREL:   "SECREL",
	IMAGE_REL_AMD64_SECREL7:  "SECREL7",
	IMAGE_REL_AMD64_TOKEN:    "TOKEN",
	IMAGE_REL_AMD64_SREL32:   "SREL32",
	IMAGE_REL_AMD64_PAIR:     "PAIR",
	IMAGE_REL_AMD64_SSPAN32:  "SSPAN32",
}

var relI386Names = map[uint16]string{
	IMAGE_REL_I386_ABSOLUTE: "ABSOLUTE",
	IMAGE_REL_I386_DIR16:    "DIR16",
	IMAGE_REL_I386_REL16:    "REL16",
	IMAGE_REL_I386_DIR32:    "DIR32",
	IMAGE_REL_I386_DIR32NB:  "DIR32NB",
	IMAGE_REL_I386_SEG12:    "SEG12",
	IMAGE_REL_I386_SECTION:  "SECTION",
	IMAGE_REL_I386_SECREL:   "SECREL",
	IMAGE_REL_I386_TOKEN:    "TOKEN",
	IMAGE_REL_I386_SECREL7:  "SECREL7",
	IMAGE_REL_I386_REL32:    "REL32",
}

var relARM64Names = map[uint16]string{
	IMAGE_REL_ARM64_ABSOLUTE:       "ABSOLUTE",
	IMAGE_REL_ARM64_ADDR32:         "ADDR32",
	IMAGE_REL_ARM64_ADDR32NB:       "ADDR32NB",
	IMAGE_REL_ARM64_BRANCH26:       "BRANCH26",
	IMAGE_REL_ARM64_PAGEBASE_REL21: "PAGEBASE_REL21",
	IMAGE_REL_ARM64_REL21:          "REL21",
	IMAGE_REL_ARM64_PAGEOFFSET_12A: "PAGEOFFSET_12A",
	IMAGE_REL_ARM64_PAGEOFFSET_12L: "PAGEOFFSET_12L",
	IMAGE_REL_ARM64_SECREL:         "SECREL",
	IMAGE_REL_ARM64_SECREL_LOW12A:  "SECREL_LOW12A",
	IMAGE_REL_ARM64_SECREL_HIGH12A: "SECREL_HIGH12A",
	IMAGE_REL_ARM64_SECREL_LOW12L:  "SECREL_LOW12L",
	IMAGE_REL_ARM64_TOKEN:          "TOKEN",
	IMAGE_REL_ARM64_SECTION:        "SECTION",
	IMAGE_REL_ARM64_ADDR64:         "ADDR64",
	IMAGE_REL_ARM64_BRANCH19:       "BRANCH19",
}

// RelocTypeString renders a relocation type tag for the given machine.
// Unmapped tags come back as hex.
func RelocTypeString(m Machine, typ uint16) string {
	var names map[uint16]string
	switch m {
	case IMAGE_FILE_MACHINE_AMD64:
		names = relAMD64Names
	case IMAGE_FILE_MACHINE_I386:
		names = relI386Names
	case IMAGE_FILE_MACHINE_ARM64:
		names = relARM64Names
	}
	if s, ok := names[typ]; ok {
		return s
	}
	return fmt.Sprintf("type(%#04x)", typ)
}
