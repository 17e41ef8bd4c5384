package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "f",
			Aliases:     []string{"format"},
			Description: "document format: xml/x, atom/a, svg/s (default: from file suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "xdom").
		WithSynopsis("xdom [opts] command [opts]").
		WithDescription("xdom is a tool for working with XML, Atom and SVG documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xdomMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			CheckCommand(cfg),
			SingularCommand(cfg),
			RoundtripCommand(cfg),
			SelectCommand(cfg),
			PatchCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [opts] [files]").
		WithDescription("rewrite documents, indented and in color").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [files]").
		WithDescription(checkDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

const checkDescription = `check documents.

Plain XML documents are checked for well-formedness.  Atom feeds and SVG
documents are also decoded into their typed models, which reports
missing required elements and attributes and unparsable values with
their location.`

func SingularCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SingularConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Singular, "singular").
		WithAliases("s", "sing").
		WithSynopsis("singular [words]").
		WithDescription("print the singular form of words, read one per line from stdin when none are given.  With -naming, words are first converted to wire names in that style.").
		WithRun(func(cc *cli.Context, args []string) error {
			return singularCmd(cfg, cc, args)
		})
}

func RoundtripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RoundtripConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Roundtrip, "roundtrip").
		WithAliases("rt").
		WithSynopsis("roundtrip [opts] [files]").
		WithDescription("decode documents into their typed model, encode them again and diff the result against the input").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return roundtrip(cfg, cc, args)
		})
}

func SelectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SelectConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Select, "select").
		WithAliases("sel").
		WithSynopsis("select [opts] <expr> [files]").
		WithDescription(selectDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return selectCmd(cfg, cc, args)
		})
}

const selectDescription = `select elements matching an expression.

The expression is evaluated on every element with

  tag    the element tag
  attrs  its attributes
  text   its text content
  depth  0 for the root
  path   as in /feed/entry[1]/title

and the functions attr(name), has(name) and child(tag).  For example

  xdom select 'tag == "link" && attr("rel") == "alternate"' feed.atom`

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <patch> [files]").
		WithDescription("apply a JSON patch (RFC 6902) or merge patch (RFC 7386) to the JSON view of documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
