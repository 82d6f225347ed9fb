package conf

import (
	"flag"
	"fmt"
	"os"
)

func (c *Config) FlagSet(name string, errorHandling flag.ErrorHandling) *flag.FlagSet {
	fs := flag.NewFlagSet(name, errorHandling)
	c.fs = fs

	fs.StringVar(&c.Output, "out", "", "Write the report to a file instead of stdout")

	fs.BoolVar(&c.ShowSymbols, "syms", true, "Print the symbol table")
	fs.BoolVar(&c.ShowRelocs, "relocs", true, "Print relocation records")
	fs.BoolVar(&c.HexDump, "hex", false, "Hex dump section contents")
	fs.BoolVar(&c.Disasm, "disasm", false, "Disassemble code sections")
	fs.BoolVar(&c.Groups, "groups", false, "List $-grouped sections in merge order")
	fs.BoolVar(&c.Debug, "debug", false, "Decode progress on stderr and raw header dump")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] ...file.[o|obj]\n", name)
	}
	return fs
}
