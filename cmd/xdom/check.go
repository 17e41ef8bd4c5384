package main

import (
	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/atom"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/svg"
	"github.com/signadot/xdom/xml"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, file := range inputs(args) {
		f := cfg.formatFor(file)
		if err := checkFile(cfg.MainConfig, cc, file, f); err != nil {
			theLog.Error("check failed", "file", file, "format", f, "error", err)
			failed++
			continue
		}
		if cfg.Verbose {
			theLog.Info("ok", "file", file, "format", f)
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func checkFile(cfg *MainConfig, cc *cli.Context, file string, f format.Format) error {
	d, err := readInput(cc, file)
	if err != nil {
		return err
	}
	return checkDoc(cfg, d, f)
}

func checkDoc(cfg *MainConfig, d []byte, f format.Format) error {
	var err error
	switch f {
	case format.AtomFormat:
		_, err = atom.Parse(d, cfg.readOpts()...)
	case format.SVGFormat:
		_, err = svg.Parse(d, cfg.readOpts()...)
	default:
		_, err = xml.Parse(d, cfg.readOpts()...)
	}
	return err
}
