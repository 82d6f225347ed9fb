// Package coff decodes relocatable COFF object files: file header,
// string table, section headers and data, relocations and symbols.
// It is read-only; nothing here applies relocations or links.
package coff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// File is the decoded object. It borrows the reader for the duration of
// Read and owns every buffer it exposes. A File is never partially
// populated: Read either finishes the whole fixed parse order or fails.
type File struct {
	Header      FileHeader
	StringTable StringTable
	Sections    []*Section
	// Relocations maps a section's index in Sections to its records in
	// file order. Sections without relocations have no entry.
	Relocations map[int][]Relocation
	Symbols     []Symbol

	r   io.ReadSeeker
	log Logger
}

// Read decodes an object from r. The reader is borrowed, not closed.
func Read(r io.ReadSeeker) (*File, error) {
	return ReadWithLogger(r, nil)
}

// ReadWithLogger is Read with decode progress sent to log. A nil log
// discards it.
func ReadWithLogger(r io.ReadSeeker, log Logger) (f *File, err error) {
	if log == nil {
		log = nopLogger{}
	}
	f = &File{r: r, log: log}
	if err = f.parse(); err != nil {
		f = nil
		return
	}
	return
}

// parse runs the fixed decode order. Steps that need a non-sequential
// offset save and restore the cursor so the order is never disturbed.
func (f *File) parse() (err error) {
	if err = f.readHeader(); err != nil {
		return
	}
	if err = f.skipOptionalHeader(); err != nil {
		return
	}
	if err = f.readStringTable(); err != nil {
		return
	}
	if err = f.readSectionHeaders(); err != nil {
		return
	}
	if err = f.readSectionData(); err != nil {
		return
	}
	if err = f.readRelocations(); err != nil {
		return
	}
	if err = f.readSymbols(); err != nil {
		return
	}
	return
}

func (f *File) readHeader() (err error) {
	if err = binary.Read(f.r, binary.LittleEndian, &f.Header); err != nil {
		return
	}
	if !f.Header.Machine.Known() {
		err = fmt.Errorf("%w: %#04x", ErrUnknownMachine, uint16(f.Header.Machine))
		return
	}
	f.log.Printf("header: machine=%s sections=%d symbols=%d",
		f.Header.Machine, f.Header.NumberOfSections, f.Header.NumberOfSymbols)
	return
}

// skipOptionalHeader jumps over the optional header, whose content is
// irrelevant for object files.
func (f *File) skipOptionalHeader() (err error) {
	if f.Header.SizeOfOptionalHeader == 0 {
		return
	}
	_, err = f.r.Seek(int64(f.Header.SizeOfOptionalHeader), io.SeekCurrent)
	return
}

func (f *File) readStringTable() (err error) {
	if f.Header.PointerToSymbolTable == 0 {
		return
	}
	var cur int64
	if cur, err = f.r.Seek(0, io.SeekCurrent); err != nil {
		return
	}
	off := f.Header.PointerToSymbolTable + f.Header.NumberOfSymbols*symbolSize
	if _, err = f.r.Seek(int64(off), io.SeekStart); err != nil {
		return
	}
	var size uint32
	if err = binary.Read(f.r, binary.LittleEndian, &size); err != nil {
		return
	}
	if size < 4 {
		err = fmt.Errorf("coff: invalid string table size %d", size)
		return
	}
	buf := make([]byte, size-4)
	if _, err = io.ReadFull(f.r, buf); err != nil {
		return
	}
	f.StringTable = StringTable{buf: buf, off: off}
	f.log.Printf("string table: offset=%#x size=%d", off, size)
	// resume where the sequential parse left off
	_, err = f.r.Seek(cur, io.SeekStart)
	return
}

func (f *File) readSectionHeaders() (err error) {
	f.Sections = make([]*Section, 0, f.Header.NumberOfSections)
	for i := 0; i < int(f.Header.NumberOfSections); i++ {
		var raw rawSectionHeader
		if err = binary.Read(f.r, binary.LittleEndian, &raw); err != nil {
			return
		}
		sh := SectionHeader{
			VirtualSize:          raw.VirtualSize,
			VirtualAddress:       raw.VirtualAddress,
			SizeOfRawData:        raw.SizeOfRawData,
			PointerToRawData:     raw.PointerToRawData,
			PointerToRelocations: raw.PointerToRelocations,
			PointerToLinenumbers: raw.PointerToLinenumbers,
			NumberOfRelocations:  raw.NumberOfRelocations,
			NumberOfLinenumbers:  raw.NumberOfLinenumbers,
			Characteristics:      raw.Characteristics,
		}
		if sh.Name, err = resolveSectionName(raw.Name, &f.StringTable); err != nil {
			return
		}
		f.Sections = append(f.Sections, &Section{SectionHeader: sh})
	}
	// in an unlinked object the virtual-size reading of the shared
	// field must be zero everywhere, or SizeOfRawData cannot be trusted
	for i, s := range f.Sections {
		if s.VirtualSize != 0 {
			err = fmt.Errorf("%w: section %d (%q) has virtual size %d",
				ErrInvalidVirtualSize, i, s.Name, s.VirtualSize)
			return
		}
	}
	return
}

func (f *File) readSectionData() (err error) {
	for _, s := range f.Sections {
		if s.SizeOfRawData == 0 {
			continue
		}
		if s.PointerToRawData == 0 {
			// uninitialized (.bss-like): size without backing bytes
			f.log.Printf("section %q: %d uninitialized bytes", s.Name, s.SizeOfRawData)
			continue
		}
		if _, err = f.r.Seek(int64(s.PointerToRawData), io.SeekStart); err != nil {
			return
		}
		buf := make([]byte, s.SizeOfRawData)
		if _, err = io.ReadFull(f.r, buf); err != nil {
			return
		}
		s.Data = buf
	}
	return
}

func (f *File) readRelocations() (err error) {
	for i, s := range f.Sections {
		if s.NumberOfRelocations == 0 {
			continue
		}
		if _, err = f.r.Seek(int64(s.PointerToRelocations), io.SeekStart); err != nil {
			return
		}
		relocs := make([]Relocation, s.NumberOfRelocations)
		if err = binary.Read(f.r, binary.LittleEndian, relocs); err != nil {
			return
		}
		if f.Relocations == nil {
			f.Relocations = make(map[int][]Relocation)
		}
		if _, exist := f.Relocations[i]; exist {
			panic(fmt.Sprintf("coff: relocations for section %d decoded twice", i))
		}
		f.Relocations[i] = relocs
		f.log.Printf("section %q: %d relocations", s.Name, len(relocs))
	}
	return
}

func (f *File) readSymbols() (err error) {
	if f.Header.NumberOfSymbols == 0 {
		return
	}
	if _, err = f.r.Seek(int64(f.Header.PointerToSymbolTable), io.SeekStart); err != nil {
		return
	}
	f.Symbols = make([]Symbol, 0, f.Header.NumberOfSymbols)
	// aux counts how many upcoming records are auxiliary payload; those
	// are kept as table entries but their fields are not interpreted
	var aux int
	for i := 0; i < int(f.Header.NumberOfSymbols); i++ {
		var raw rawSymbol
		if err = binary.Read(f.r, binary.LittleEndian, &raw); err != nil {
			return
		}
		sym := Symbol{
			Name:               resolveSymbolName(raw.Name, &f.StringTable),
			Value:              raw.Value,
			SectionNumber:      raw.SectionNumber,
			Type:               raw.Type,
			StorageClass:       StorageClass(raw.StorageClass),
			NumberOfAuxSymbols: raw.NumberOfAuxSymbols,
		}
		if aux > 0 {
			aux--
		} else {
			if !sym.StorageClass.Known() {
				err = fmt.Errorf("%w: %#02x (symbol %d, %q)",
					ErrUnknownStorageClass, raw.StorageClass, i, sym.Name)
				return
			}
			aux = int(raw.NumberOfAuxSymbols)
		}
		f.Symbols = append(f.Symbols, sym)
	}
	f.log.Printf("symbol table: %d records", len(f.Symbols))
	return
}

// Section returns the first section with the given name, nil when absent.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}
