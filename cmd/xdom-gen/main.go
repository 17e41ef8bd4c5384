package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xdom/codegen"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("xdom-gen").
		WithSynopsis("xdom-gen [opts] [packages]").
		WithDescription("Generate explicit binding registrations (schema.DefineStruct) for structs with xdom tags.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile string `cli:"name=o desc='output file for generated code (default: <package>_xdom.go in the package directory)'"`
	Dir        string `cli:"name=dir desc='directory in which packages are resolved (default: current directory)'"`
	Types      string `cli:"name=types desc='comma separated struct names to generate (default: all tagged structs)'"`
	DryRun     bool   `cli:"name=n desc='print generated code instead of writing it'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pkgs, err := codegen.Load(dir, patterns...)
	if err != nil {
		return err
	}
	if cfg.OutputFile != "" && len(pkgs) > 1 {
		return fmt.Errorf("%w: -o requires a single package, got %d", cli.ErrUsage, len(pkgs))
	}
	var types []string
	if cfg.Types != "" {
		types = strings.Split(cfg.Types, ",")
	}
	for _, pkg := range pkgs {
		if err := pkg.Select(types...); err != nil {
			return err
		}
		if len(pkg.Structs) == 0 {
			continue
		}
		if cfg.DryRun {
			src, err := codegen.Generate(pkg)
			if err != nil {
				return err
			}
			if _, err := cc.Out.Write(src); err != nil {
				return err
			}
			continue
		}
		out := cfg.OutputFile
		if out == "" {
			out = codegen.OutputFile(pkg)
		}
		if err := codegen.WriteFile(pkg, out); err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s: %d structs -> %s\n", pkg.Path, len(pkg.Structs), out)
	}
	return nil
}
