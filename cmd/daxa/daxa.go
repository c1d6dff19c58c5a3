package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/daxa-format/go-daxa/parse"

	"github.com/scott-cotton/cli"
)

func daxaMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.D, cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -d[axa] -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// eachDocument parses every named file (or stdin when args is empty)
// and calls f with the result.
func eachDocument(args []string, opts []parse.Opt, f func(path string, doc *parse.Document) error) error {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		doc, err := parse.ParseDocument(data, "<stdin>", opts...)
		if err != nil {
			return err
		}
		return f("<stdin>", doc)
	}
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := parse.ParseDocument(data, path, opts...)
		if err != nil {
			return err
		}
		if err := f(path, doc); err != nil {
			return err
		}
	}
	return nil
}
