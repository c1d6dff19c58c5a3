package main

import (
	"fmt"

	"github.com/daxa-format/go-daxa/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachDocument(args, cfg.parseOpts(), func(path string, doc *parse.Document) error {
		nData := len(doc.DataBlocks())
		nDefs := len(doc.Schema.Definitions())
		fmt.Fprintf(cc.Out, "ok\t%s\t%d definitions, %d data blocks\n", path, nDefs, nData)
		return nil
	})
}
