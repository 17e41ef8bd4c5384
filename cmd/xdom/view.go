package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/xml"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		if err := viewFile(cfg, cc, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	d, err := readInput(cc, file)
	if err != nil {
		return err
	}
	n, err := xml.Parse(d, cfg.readOpts()...)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		theLog.Info("view", "file", file, "elements", countElements(n))
	}
	if cfg.JSON {
		return writeJSON(cfg.MainConfig, cc.Out, n)
	}
	return render(cfg.MainConfig, cc.Out, n)
}

// render writes n, ending compact output with a newline.
func render(cfg *MainConfig, w io.Writer, n *dom.Node) error {
	if err := xml.Render(w, n, cfg.writeOpts(w)...); err != nil {
		return err
	}
	if cfg.Indent == 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func writeJSON(cfg *MainConfig, w io.Writer, n *dom.Node) error {
	d, err := dom.ToJSON(n, strings.Repeat(" ", cfg.Indent))
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func countElements(n *dom.Node) int {
	count := 0
	n.Visit(func(c *dom.Node, isPost bool) (bool, error) {
		if !isPost && c.IsElement() {
			count++
		}
		return true, nil
	})
	return count
}
