// Package disasm turns code-section bytes into Go-syntax listings for
// the machines this tool can print. Strictly a reporting aid; decode
// failures degrade to raw byte lines instead of aborting.
package disasm

import (
	"fmt"

	"golang.org/x/arch/arm/armasm"
	"golang.org/x/arch/arm64/arm64asm"
	"golang.org/x/arch/x86/x86asm"

	"github.com/mwlod/gocoff/lib/coff"
)

type SymLookup func(addr uint64) (name string, base uint64)

// Func decodes one instruction at pc and renders it.
type Func func(code []byte, pc uint64, symname SymLookup) (text string, size int, err error)

// For picks a decoder for the object's machine.
func For(m coff.Machine) (fn Func, err error) {
	switch m {
	case coff.IMAGE_FILE_MACHINE_I386:
		fn = disasm_386
	case coff.IMAGE_FILE_MACHINE_AMD64:
		fn = disasm_amd64
	case coff.IMAGE_FILE_MACHINE_ARM, coff.IMAGE_FILE_MACHINE_ARMNT:
		fn = disasm_arm
	case coff.IMAGE_FILE_MACHINE_ARM64:
		fn = disasm_arm64
	default:
		err = fmt.Errorf("disasm: machine %s not supported", m)
	}
	return
}

func disasm_386(code []byte, pc uint64, symname SymLookup) (text string, size int, err error) {
	var inst x86asm.Inst
	inst, err = x86asm.Decode(code, 32)
	if err != nil {
		return
	}
	text = x86asm.GoSyntax(inst, pc, x86asm.SymLookup(symname))
	size = inst.Len
	return
}

func disasm_amd64(code []byte, pc uint64, symname SymLookup) (text string, size int, err error) {
	var inst x86asm.Inst
	inst, err = x86asm.Decode(code, 64)
	if err != nil {
		return
	}
	text = x86asm.GoSyntax(inst, pc, x86asm.SymLookup(symname))
	size = inst.Len
	return
}

func disasm_arm(code []byte, pc uint64, symname SymLookup) (text string, size int, err error) {
	var inst armasm.Inst
	inst, err = armasm.Decode(code, armasm.ModeARM)
	if err != nil {
		return
	}
	text = armasm.GoSyntax(inst, pc, symname, nil)
	size = inst.Len
	return
}

func disasm_arm64(code []byte, pc uint64, symname SymLookup) (text string, size int, err error) {
	var inst arm64asm.Inst
	inst, err = arm64asm.Decode(code)
	if err != nil {
		return
	}
	text = arm64asm.GoSyntax(inst, pc, symname, nil)
	size = 4
	return
}

// Listing decodes a whole buffer. Bytes the decoder rejects become BYTE
// lines so the listing always covers the full section.
func Listing(fn Func, code []byte, pc uint64, symname SymLookup) (lines []string) {
	if symname == nil {
		symname = func(uint64) (string, uint64) { return "", 0 }
	}
	for len(code) > 0 {
		text, size, err := fn(code, pc, symname)
		if err != nil || size <= 0 {
			text = fmt.Sprintf("BYTE $%#02x", code[0])
			size = 1
		}
		lines = append(lines, fmt.Sprintf("%8x: %s", pc, text))
		code = code[size:]
		pc += uint64(size)
	}
	return
}
