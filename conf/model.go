package conf

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// ObjFiles are the objects to dump, in argument order.
	ObjFiles []string

	Output string

	ShowSymbols bool
	ShowRelocs  bool
	HexDump     bool
	Disasm      bool
	Groups      bool
	Debug       bool

	fs *flag.FlagSet
}

func Default() *Config {
	return &Config{}
}

func (cfg *Config) Validate() error {
	var invalidFile []string
	for _, inp := range cfg.fs.Args() {
		originalFilename := inp
		inp = mustAbs(inp)
		switch {
		case strings.HasSuffix(inp, ".o"), strings.HasSuffix(inp, ".obj"):
			if validateFilePath(inp) {
				cfg.ObjFiles = append(cfg.ObjFiles, inp)
				break
			}
			fallthrough
		default:
			invalidFile = append(invalidFile, originalFilename)
		}
	}
	if len(invalidFile) > 0 {
		for _, fn := range invalidFile {
			fmt.Fprintf(os.Stderr, "error: file %q: not .o or .obj, or the file is missing.\n", fn)
		}
		return fmt.Errorf("invalid input")
	}

	if len(cfg.ObjFiles) < 1 {
		return fmt.Errorf("nothing to do")
	}
	return nil
}
