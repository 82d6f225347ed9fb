package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mwlod/gocoff/conf"
	"github.com/mwlod/gocoff/lib/coff"
	"github.com/mwlod/gocoff/lib/dump"
)

func Main(cfg *conf.Config) (err error) {
	var w io.Writer = os.Stdout
	if cfg.Output != "" {
		var out *os.File
		if out, err = os.Create(cfg.Output); err != nil {
			return
		}
		defer out.Close()
		w = out
	}

	var failed int
	for _, path := range cfg.ObjFiles {
		if len(cfg.ObjFiles) > 1 {
			fmt.Fprintf(w, "==> %s\n", path)
		}
		// a broken object only fails itself, the rest still dump
		if errx := dumpFile(w, cfg, path); errx != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", path, errx)
			failed++
		}
	}
	if failed > 0 {
		err = fmt.Errorf("%d of %d files failed", failed, len(cfg.ObjFiles))
	}
	return
}

func dumpFile(w io.Writer, cfg *conf.Config, path string) (err error) {
	var f *os.File
	if f, err = os.Open(path); err != nil {
		return
	}
	defer f.Close()

	var logger coff.Logger
	if cfg.Debug {
		logger = log.New(os.Stderr, "coff: ", 0)
	}
	var obj *coff.File
	if obj, err = coff.ReadWithLogger(f, logger); err != nil {
		return
	}

	d := dump.New(w, obj, dump.Options{
		Symbols: cfg.ShowSymbols,
		Relocs:  cfg.ShowRelocs,
		Hex:     cfg.HexDump,
		Disasm:  cfg.Disasm,
		Groups:  cfg.Groups,
		Debug:   cfg.Debug,
	})
	return d.Dump()
}
