package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/xml"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	p, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	for _, file := range inputs(args[1:]) {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		n, err := xml.Parse(d, cfg.readOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		var res *dom.Node
		if cfg.Merge {
			res, err = dom.MergePatch(n, p)
		} else {
			res, err = dom.Patch(n, p)
		}
		if err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
		if cfg.JSON {
			err = writeJSON(cfg.MainConfig, cc.Out, res)
		} else {
			err = render(cfg.MainConfig, cc.Out, res)
		}
		if err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}

func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) ([]byte, error) {
	if cfg.String {
		return []byte(arg), nil
	}
	d, err := readInput(cc, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return d, nil
}
