package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/query"
	"github.com/signadot/xdom/xml"
)

func selectCmd(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: select requires an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	total := 0
	for _, file := range inputs(args[1:]) {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		n, err := xml.Parse(d, cfg.readOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		res, err := q.Select(n)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			theLog.Info("select", "file", file, "matches", len(res))
		}
		total += len(res)
		if cfg.Count {
			continue
		}
		for _, m := range res {
			if cfg.Paths {
				fmt.Fprintln(cc.Out, m.Path())
				continue
			}
			if err := render(cfg.MainConfig, cc.Out, m); err != nil {
				return err
			}
		}
	}
	if cfg.Count {
		fmt.Fprintln(cc.Out, total)
	}
	return nil
}
