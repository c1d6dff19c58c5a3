package main

import (
	"fmt"

	"github.com/daxa-format/go-daxa/encode"
	"github.com/daxa-format/go-daxa/parse"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	encOpts := cfg.encOpts(cc.Out)
	daxaOut := cfg.outFormat().IsDaxa()
	return eachDocument(args, cfg.parseOpts(), func(path string, doc *parse.Document) error {
		for _, b := range doc.DataBlocks() {
			if daxaOut {
				fmt.Fprintf(cc.Out, "data %s %s ", b.TypeName, b.Name)
			}
			if err := encode.Encode(b.Value, cc.Out, encOpts...); err != nil {
				return err
			}
		}
		return nil
	})
}
