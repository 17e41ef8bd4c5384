package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/xdom/atom"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/svg"
	"github.com/signadot/xdom/xml"
)

func roundtrip(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		return err
	}
	differ := false
	for _, file := range inputs(args) {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		f := cfg.formatFor(file)
		want, got, err := roundtripDoc(cfg.MainConfig, d, f)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if want == got {
			if cfg.Verbose {
				theLog.Info("round trip ok", "file", file, "format", f)
			}
			continue
		}
		differ = true
		if cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: differs\n", file)
			continue
		}
		if err := writeDiff(cc.Out, file, want, got, cfg.colors(cc.Out)); err != nil {
			return err
		}
	}
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// roundtripDoc renders the tree of d and the typed decoding of d
// encoded again, both indented.
func roundtripDoc(cfg *MainConfig, d []byte, f format.Format) (string, string, error) {
	indent := cfg.Indent
	if indent == 0 {
		indent = 2
	}
	wOpts := []xml.Option{xml.Indent(strings.Repeat(" ", indent))}
	n, err := xml.Parse(d, cfg.readOpts()...)
	if err != nil {
		return "", "", err
	}
	want := &bytes.Buffer{}
	if err := xml.Render(want, n, append(wOpts, xml.Namespace(f.Namespace()))...); err != nil {
		return "", "", err
	}
	got, err := typedRoundtrip(cfg, d, f, n.Tag, wOpts)
	if err != nil {
		return "", "", err
	}
	return want.String(), string(got), nil
}

func typedRoundtrip(cfg *MainConfig, d []byte, f format.Format, root string, wOpts []xml.Option) ([]byte, error) {
	switch {
	case f == format.AtomFormat && root == "entry":
		e, err := atom.ParseEntry(d, cfg.readOpts()...)
		if err != nil {
			return nil, err
		}
		return atom.MarshalEntry(e, wOpts...)
	case f == format.AtomFormat:
		feed, err := atom.Parse(d, cfg.readOpts()...)
		if err != nil {
			return nil, err
		}
		return atom.Marshal(feed, wOpts...)
	case f == format.SVGFormat:
		s, err := svg.Parse(d, cfg.readOpts()...)
		if err != nil {
			return nil, err
		}
		return svg.Marshal(s, wOpts...)
	}
	var node dom.Node
	if err := xml.Unmarshal(d, &node, cfg.readOpts()...); err != nil {
		return nil, err
	}
	return xml.Marshal(&node, wOpts...)
}

// writeDiff writes a line diff of want and got.
func writeDiff(w io.Writer, name, want, got string, colors bool) error {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del, ins := fmt.Sprint, fmt.Sprint
	if colors {
		del = color.New(color.FgRed).SprintFunc()
		ins = color.New(color.FgGreen).SprintFunc()
	}
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s (round trip)\n", name, name); err != nil {
		return err
	}
	for _, diff := range diffs {
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			var err error
			switch diff.Type {
			case diffpatch.DiffDelete:
				_, err = io.WriteString(w, del("-"+line))
			case diffpatch.DiffInsert:
				_, err = io.WriteString(w, ins("+"+line))
			default:
				_, err = io.WriteString(w, " "+line)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
