// Package dump renders a decoded object as a human-readable report. It
// only reads coff.File fields; all format knowledge lives in lib/coff.
package dump

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/slices"

	"github.com/mwlod/gocoff/lib/coff"
	"github.com/mwlod/gocoff/lib/disasm"
	"github.com/mwlod/gocoff/lib/util"
)

type Options struct {
	Symbols bool
	Relocs  bool
	Hex     bool
	Disasm  bool
	Groups  bool
	Debug   bool
}

type Dumper struct {
	w   io.Writer
	f   *coff.File
	opt Options
}

func New(w io.Writer, f *coff.File, opt Options) *Dumper {
	return &Dumper{w: w, f: f, opt: opt}
}

func (d *Dumper) Dump() (err error) {
	d.header()
	if err = d.sections(); err != nil {
		return
	}
	if d.opt.Groups {
		d.groups()
	}
	if d.opt.Symbols {
		d.symbols()
	}
	if d.opt.Debug {
		fmt.Fprint(d.w, spew.Sdump(d.f.Header))
	}
	return
}

func (d *Dumper) header() {
	h := &d.f.Header
	fmt.Fprintf(d.w, "machine         = %s\n", h.Machine)
	fmt.Fprintf(d.w, "sections        = %d\n", h.NumberOfSections)
	fmt.Fprintf(d.w, "timestamp       = %#08x\n", h.TimeDateStamp)
	fmt.Fprintf(d.w, "symbol table    = %d records @%#x\n", h.NumberOfSymbols, h.PointerToSymbolTable)
	fmt.Fprintf(d.w, "optional header = %d bytes\n", h.SizeOfOptionalHeader)
	fmt.Fprintf(d.w, "characteristics = %#04x\n", h.Characteristics)
}

func (d *Dumper) sections() (err error) {
	var dis disasm.Func
	if d.opt.Disasm {
		if dis, err = disasm.For(d.f.Header.Machine); err != nil {
			return
		}
	}
	for i, s := range d.f.Sections {
		var align uint32
		if align, err = s.Alignment(); err != nil {
			return
		}
		fmt.Fprintf(d.w, "\nsection %d: %q\n", i, s.Name)
		fmt.Fprintf(d.w, "\traw data        = %d bytes @%#x\n", s.SizeOfRawData, s.PointerToRawData)
		fmt.Fprintf(d.w, "\trelocations     = %d @%#x\n", s.NumberOfRelocations, s.PointerToRelocations)
		fmt.Fprintf(d.w, "\tline numbers    = %d @%#x\n", s.NumberOfLinenumbers, s.PointerToLinenumbers)
		fmt.Fprintf(d.w, "\tcharacteristics = %#08x align=%d\n", s.Characteristics, align)
		if key, suffix := s.Group(); s.Grouped() {
			fmt.Fprintf(d.w, "\tgroup           = %q suffix %q\n", key, suffix)
		}
		if d.opt.Hex && len(s.Data) > 0 {
			for _, row := range util.HexDump(s.Data, 0) {
				fmt.Fprintf(d.w, "\t%s\n", row)
			}
		}
		if d.opt.Relocs {
			d.relocations(i)
		}
		if dis != nil && s.Characteristics&coff.IMAGE_SCN_CNT_CODE != 0 && len(s.Data) > 0 {
			for _, line := range disasm.Listing(dis, s.Data, 0, d.symLookup(i)) {
				fmt.Fprintf(d.w, "\t%s\n", line)
			}
		}
	}
	return
}

func (d *Dumper) relocations(sec int) {
	for _, r := range d.f.Relocations[sec] {
		name := ""
		if int(r.SymbolTableIndex) < len(d.f.Symbols) {
			name = d.f.Symbols[r.SymbolTableIndex].Name
		}
		fmt.Fprintf(d.w, "\treloc va=%#08x sym=%d (%s) type=%s\n",
			r.VirtualAddress, r.SymbolTableIndex, name,
			coff.RelocTypeString(d.f.Header.Machine, r.Type))
	}
}

// groups lists $-grouped sections per target section, ordered by suffix
// the way a linker would merge them. Listing only; nothing is merged.
func (d *Dumper) groups() {
	type member struct {
		suffix string
		index  int
	}
	byKey := map[string][]member{}
	var keys []string
	for i, s := range d.f.Sections {
		if !s.Grouped() {
			continue
		}
		key, suffix := s.Group()
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], member{suffix, i})
	}
	if len(keys) == 0 {
		return
	}
	slices.Sort(keys)
	fmt.Fprintf(d.w, "\nsection groups:\n")
	for _, key := range keys {
		members := byKey[key]
		slices.SortFunc(members, func(a, b member) bool { return a.suffix < b.suffix })
		fmt.Fprintf(d.w, "\t%q:", key)
		for _, m := range members {
			fmt.Fprintf(d.w, " %q(section %d)", m.suffix, m.index)
		}
		fmt.Fprintln(d.w)
	}
}

func (d *Dumper) symbols() {
	if len(d.f.Symbols) == 0 {
		return
	}
	fmt.Fprintf(d.w, "\nsymbols (%d records):\n", len(d.f.Symbols))
	aux := 0
	for i := range d.f.Symbols {
		s := &d.f.Symbols[i]
		if aux > 0 {
			aux--
			fmt.Fprintf(d.w, "%4d:   <aux record>\n", i)
			continue
		}
		aux = int(s.NumberOfAuxSymbols)
		fmt.Fprintf(d.w, "%4d: %-24s value=%#08x section=%s class=%s type=%s/%s aux=%d\n",
			i, s.Name, s.Value, sectionNumberString(s.SectionNumber),
			s.StorageClass,
			coff.BaseTypeString(s.BaseType()), coff.ComplexTypeString(s.ComplexType()),
			s.NumberOfAuxSymbols)
	}
}

// symLookup maps addresses inside section sec to the nearest preceding
// symbol defined there, for disassembly annotations.
func (d *Dumper) symLookup(sec int) disasm.SymLookup {
	type ent struct {
		val  uint64
		name string
	}
	var ents []ent
	aux := 0
	for i := range d.f.Symbols {
		s := &d.f.Symbols[i]
		if aux > 0 {
			aux--
			continue
		}
		aux = int(s.NumberOfAuxSymbols)
		if int(s.SectionNumber) == sec+1 && s.Name != "" {
			ents = append(ents, ent{uint64(s.Value), s.Name})
		}
	}
	slices.SortFunc(ents, func(a, b ent) bool { return a.val < b.val })
	return func(addr uint64) (string, uint64) {
		for i := len(ents) - 1; i >= 0; i-- {
			if ents[i].val <= addr {
				return ents[i].name, ents[i].val
			}
		}
		return "", 0
	}
}

func sectionNumberString(n int16) string {
	switch n {
	case coff.IMAGE_SYM_UNDEFINED:
		return "UNDEF"
	case coff.IMAGE_SYM_ABSOLUTE:
		return "ABS"
	case coff.IMAGE_SYM_DEBUG:
		return "DEBUG"
	}
	return strconv.Itoa(int(n))
}
