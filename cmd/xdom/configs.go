package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/config"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/token"
	"github.com/signadot/xdom/xml"
)

type MainConfig struct {
	Indent      int    `cli:"name=indent desc='indent width, 0 for compact output'"`
	Color       bool   `cli:"name=color desc='write with color'"`
	Decl        bool   `cli:"name=decl desc='write an XML declaration'"`
	KeepSpace   bool   `cli:"name=ws desc='keep whitespace-only text'"`
	HTML        bool   `cli:"name=html desc='accept HTML entities such as &nbsp;'"`
	DenyUnknown bool   `cli:"name=strict desc='reject unknown elements and attributes when decoding typed documents'"`
	Naming      string `cli:"name=naming desc='case style of wire names'"`
	ConfigFile  string `cli:"name=config desc='configuration file (default: nearest .xdom.yaml)'"`
	Verbose     bool   `cli:"name=v desc='log progress'"`

	Format *format.Format
	File   *config.Config

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Format = &f
		return f, nil
	})
}

// optSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) optSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// loadFile reads the configuration file and applies it to the options
// not given on the command line.
func (cfg *MainConfig) loadFile() error {
	var (
		file *config.Config
		err  error
	)
	if cfg.ConfigFile != "" {
		file, err = config.Load(cfg.ConfigFile)
	} else {
		file, err = config.Find(".")
	}
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.File = file
	if cfg.Verbose && file.Path != "" {
		theLog.Info("loaded config", "path", file.Path)
	}
	if !cfg.optSet("indent") {
		cfg.Indent = file.Indent
	}
	if !cfg.optSet("decl") {
		cfg.Decl = file.Declaration
	}
	if !cfg.optSet("ws") {
		cfg.KeepSpace = file.KeepSpace
	}
	if !cfg.optSet("strict") {
		cfg.DenyUnknown = file.DenyUnknown
	}
	if !cfg.optSet("naming") {
		cfg.Naming = file.Naming
	}
	if _, err := naming.ParseStyle(cfg.Naming); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return nil
}

// formatFor is the format of the document at path: the -f option, the
// file suffix, then the configuration file.
func (cfg *MainConfig) formatFor(path string) format.Format {
	if cfg.Format != nil {
		return *cfg.Format
	}
	if f := format.FromPath(path); f != format.XMLFormat || strings.EqualFold(filepath.Ext(path), ".xml") {
		return f
	}
	if cfg.File != nil {
		return cfg.File.GetFormat()
	}
	return format.XMLFormat
}

func (cfg *MainConfig) readOpts() []xml.Option {
	return []xml.Option{
		xml.KeepSpace(cfg.KeepSpace),
		xml.HTMLEntities(cfg.HTML),
		xml.DenyUnknown(cfg.DenyUnknown),
	}
}

func (cfg *MainConfig) writeOpts(w io.Writer) []xml.Option {
	res := []xml.Option{xml.Declaration(cfg.Decl)}
	if cfg.Indent > 0 {
		res = append(res, xml.Indent(strings.Repeat(" ", cfg.Indent)))
	}
	if cfg.colors(w) {
		res = append(res, xml.Colors(token.NewColors()))
	}
	return res
}

// colors decides on colored output: the -color option, then the color
// setting of the configuration file, where auto means colors on a
// terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.optSet("color") {
		return cfg.Color
	}
	mode := "auto"
	if cfg.File != nil && cfg.File.Color != "" {
		mode = cfg.File.Color
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig
	JSON bool `cli:"name=j aliases=json desc='print the JSON view of documents'"`

	View *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type SingularConfig struct {
	*MainConfig

	Singular *cli.Command
}

type RoundtripConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report whether documents survive the round trip'"`

	Roundtrip *cli.Command
}

type SelectConfig struct {
	*MainConfig
	Paths bool `cli:"name=p desc='print the paths of matching elements'"`
	Count bool `cli:"name=c desc='print the number of matching elements'"`

	Select *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=m desc='apply a JSON merge patch (RFC 7386)'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	JSON   bool `cli:"name=j aliases=json desc='print the JSON view of the result'"`

	Patch *cli.Command
}
