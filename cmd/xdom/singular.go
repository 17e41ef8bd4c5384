package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/singular"
)

func singularCmd(cfg *SingularConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Singular.Parse(cc, args)
	if err != nil {
		return err
	}
	var style naming.Style
	if cfg.Naming != "" {
		style, err = naming.ParseStyle(cfg.Naming)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	word := func(w string) error {
		if style != "" {
			w = style.Apply(w)
		}
		_, err := fmt.Fprintln(cc.Out, singular.Singularize(w))
		return err
	}
	if len(args) > 0 {
		for _, w := range args {
			if err := word(w); err != nil {
				return err
			}
		}
		return nil
	}
	sc := bufio.NewScanner(cc.In)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		if err := word(w); err != nil {
			return err
		}
	}
	return sc.Err()
}
