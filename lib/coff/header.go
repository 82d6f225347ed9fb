package coff

import "fmt"

// Machine is the target machine field of the file header.
type Machine uint16

const (
	IMAGE_FILE_MACHINE_I386        Machine = 0x14c
	IMAGE_FILE_MACHINE_R3000       Machine = 0x162
	IMAGE_FILE_MACHINE_R4000       Machine = 0x166
	IMAGE_FILE_MACHINE_R10000      Machine = 0x168
	IMAGE_FILE_MACHINE_WCEMIPSV2   Machine = 0x169
	IMAGE_FILE_MACHINE_ALPHA       Machine = 0x184
	IMAGE_FILE_MACHINE_SH3         Machine = 0x1a2
	IMAGE_FILE_MACHINE_SH3DSP      Machine = 0x1a3
	IMAGE_FILE_MACHINE_SH4         Machine = 0x1a6
	IMAGE_FILE_MACHINE_SH5         Machine = 0x1a8
	IMAGE_FILE_MACHINE_ARM         Machine = 0x1c0
	IMAGE_FILE_MACHINE_THUMB       Machine = 0x1c2
	IMAGE_FILE_MACHINE_ARMNT       Machine = 0x1c4
	IMAGE_FILE_MACHINE_AM33        Machine = 0x1d3
	IMAGE_FILE_MACHINE_POWERPC     Machine = 0x1f0
	IMAGE_FILE_MACHINE_POWERPCFP   Machine = 0x1f1
	IMAGE_FILE_MACHINE_IA64        Machine = 0x200
	IMAGE_FILE_MACHINE_MIPS16      Machine = 0x266
	IMAGE_FILE_MACHINE_MIPSFPU     Machine = 0x366
	IMAGE_FILE_MACHINE_MIPSFPU16   Machine = 0x466
	IMAGE_FILE_MACHINE_EBC         Machine = 0xebc
	IMAGE_FILE_MACHINE_RISCV32     Machine = 0x5032
	IMAGE_FILE_MACHINE_RISCV64     Machine = 0x5064
	IMAGE_FILE_MACHINE_RISCV128    Machine = 0x5128
	IMAGE_FILE_MACHINE_LOONGARCH32 Machine = 0x6232
	IMAGE_FILE_MACHINE_LOONGARCH64 Machine = 0x6264
	IMAGE_FILE_MACHINE_AMD64       Machine = 0x8664
	IMAGE_FILE_MACHINE_M32R        Machine = 0x9041
	IMAGE_FILE_MACHINE_ARM64       Machine = 0xaa64
)

var machineNames = map[Machine]string{
	IMAGE_FILE_MACHINE_I386:        "386",
	IMAGE_FILE_MACHINE_R3000:       "r3000",
	IMAGE_FILE_MACHINE_R4000:       "r4000",
	IMAGE_FILE_MACHINE_R10000:      "r10000",
	IMAGE_FILE_MACHINE_WCEMIPSV2:   "mips-wce-v2",
	IMAGE_FILE_MACHINE_ALPHA:       "alpha",
	IMAGE_FILE_MACHINE_SH3:         "sh3",
	IMAGE_FILE_MACHINE_SH3DSP:      "sh3dsp",
	IMAGE_FILE_MACHINE_SH4:         "sh4",
	IMAGE_FILE_MACHINE_SH5:         "sh5",
	IMAGE_FILE_MACHINE_ARM:         "arm",
	IMAGE_FILE_MACHINE_THUMB:       "thumb",
	IMAGE_FILE_MACHINE_ARMNT:       "armnt",
	IMAGE_FILE_MACHINE_AM33:        "am33",
	IMAGE_FILE_MACHINE_POWERPC:     "ppc",
	IMAGE_FILE_MACHINE_POWERPCFP:   "ppcfp",
	IMAGE_FILE_MACHINE_IA64:        "ia64",
	IMAGE_FILE_MACHINE_MIPS16:      "mips16",
	IMAGE_FILE_MACHINE_MIPSFPU:     "mipsfpu",
	IMAGE_FILE_MACHINE_MIPSFPU16:   "mipsfpu16",
	IMAGE_FILE_MACHINE_EBC:         "ebc",
	IMAGE_FILE_MACHINE_RISCV32:     "riscv32",
	IMAGE_FILE_MACHINE_RISCV64:     "riscv64",
	IMAGE_FILE_MACHINE_RISCV128:    "riscv128",
	IMAGE_FILE_MACHINE_LOONGARCH32: "loong32",
	IMAGE_FILE_MACHINE_LOONGARCH64: "loong64",
	IMAGE_FILE_MACHINE_AMD64:       "amd64",
	IMAGE_FILE_MACHINE_M32R:        "m32r",
	IMAGE_FILE_MACHINE_ARM64:       "arm64",
}

// Known reports whether m is in the closed machine set. Machine 0
// (anonymous object) is deliberately outside of it.
func (m Machine) Known() bool {
	_, ok := machineNames[m]
	return ok
}

func (m Machine) String() string {
	if s, ok := machineNames[m]; ok {
		return s
	}
	return fmt.Sprintf("machine(%#04x)", uint16(m))
}

// File header characteristics.
const (
	IMAGE_FILE_RELOCS_STRIPPED     = 0x0001
	IMAGE_FILE_EXECUTABLE_IMAGE    = 0x0002
	IMAGE_FILE_LINE_NUMS_STRIPPED  = 0x0004
	IMAGE_FILE_LOCAL_SYMS_STRIPPED = 0x0008
	IMAGE_FILE_LARGE_ADDRESS_AWARE = 0x0020
	IMAGE_FILE_32BIT_MACHINE       = 0x0100
	IMAGE_FILE_DEBUG_STRIPPED      = 0x0200
	IMAGE_FILE_SYSTEM              = 0x1000
	IMAGE_FILE_DLL                 = 0x2000
)

// FileHeader is the fixed 20-byte record at the start of a COFF object.
// Immutable once decoded.
type FileHeader struct {
	Machine              Machine
	NumberOfSections     uint16
	TimeDateStamp        uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

const fileHeaderSize = 20
