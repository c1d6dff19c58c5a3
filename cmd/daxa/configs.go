package main

import (
	"fmt"
	"io"
	"os"

	"github.com/daxa-format/go-daxa/encode"
	"github.com/daxa-format/go-daxa/format"
	"github.com/daxa-format/go-daxa/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	D bool `cli:"name=d aliases=daxa desc='output in daxa'"`
	J bool `cli:"name=j aliases=json desc='output in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output in yaml'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	var fmat format.Format
	switch {
	case cfg.D:
		fmat = format.DaxaFormat
	case cfg.J:
		fmat = format.JSONFormat
	case cfg.Y:
		fmat = format.YAMLFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeCompact(cfg.WireOut),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type CheckConfig struct {
	*MainConfig

	Loose bool `cli:"name=loose desc='allow undeclared fields in data blocks'"`
	Depth int  `cli:"name=depth desc='validation recursion ceiling'"`

	Check *cli.Command
}

func (cfg *CheckConfig) parseOpts() []parse.Opt {
	res := []parse.Opt{parse.StrictFields(!cfg.Loose)}
	if cfg.Depth > 0 {
		res = append(res, parse.MaxDepth(cfg.Depth))
	}
	return res
}

type DumpConfig struct {
	*MainConfig

	Loose bool `cli:"name=loose desc='allow undeclared fields in data blocks'"`
	Depth int  `cli:"name=depth desc='validation recursion ceiling'"`

	Dump *cli.Command
}

func (cfg *DumpConfig) parseOpts() []parse.Opt {
	res := []parse.Opt{parse.StrictFields(!cfg.Loose)}
	if cfg.Depth > 0 {
		res = append(res, parse.MaxDepth(cfg.Depth))
	}
	return res
}

type SchemaConfig struct {
	*MainConfig

	Schema *cli.Command
}
