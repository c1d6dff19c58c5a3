package main

import (
	"fmt"

	"github.com/daxa-format/go-daxa/parse"
	"github.com/daxa-format/go-daxa/schema"

	"github.com/scott-cotton/cli"
)

func schemaCmd(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachDocument(args, []parse.Opt{parse.SkipValidation()}, func(path string, doc *parse.Document) error {
		s := doc.Schema
		for _, def := range s.Definitions() {
			switch d := def.(type) {
			case *schema.StructDef:
				fmt.Fprintf(cc.Out, "struct %s {\n", d.Name)
				for _, f := range d.Fields {
					fmt.Fprintf(cc.Out, "  %s: %s;\n", f.Name, f.Type.String())
				}
				fmt.Fprintf(cc.Out, "}\n")
			case *schema.EnumDef:
				fmt.Fprintf(cc.Out, "enum %s {\n", d.Name)
				for _, v := range d.Values {
					fmt.Fprintf(cc.Out, "  %s;\n", v.Name)
				}
				fmt.Fprintf(cc.Out, "}\n")
			case *schema.AliasDef:
				fmt.Fprintf(cc.Out, "type %s = %s;\n", d.Name, d.Target.String())
			}
		}
		for _, c := range s.Constants() {
			if c.DeclaredType != nil {
				fmt.Fprintf(cc.Out, "const %s: %s = %s;\n", c.Name, c.DeclaredType.String(), c.Value.LiteralText())
				continue
			}
			fmt.Fprintf(cc.Out, "const %s = %s;\n", c.Name, c.Value.LiteralText())
		}
		return nil
	})
}
