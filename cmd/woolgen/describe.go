package main

import (
	"fmt"

	"github.com/alpakka/wools/wool"

	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"
)

var cmdDescribe = &cli.Command{
	Name:      "describe",
	Usage:     "print the descriptor tree of YANG modules without writing sources",
	ArgsUsage: `<path>...`,
	Flags:     schemaFlags,
	Action:    runDescribe,
}

func runDescribe(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cctx)
	if err != nil {
		return err
	}
	batch, err := wool.NewBatch(catalog, cfg)
	if err != nil {
		return err
	}
	res, err := batch.Run(cctx.Context)
	if err != nil {
		return err
	}

	fmt.Fprint(cctx.App.Writer, describeResult(res).String())
	return nil
}

func describeResult(res *wool.Result) treeprint.Tree {
	tree := treeprint.NewWithRoot("modules")
	for _, m := range res.Modules {
		mb := tree.AddMetaBranch(m.Package, m.Name)
		for _, en := range m.Enums() {
			eb := mb.AddMetaBranch("enum", en.Name)
			for _, v := range en.Values {
				eb.AddNode(v.Name)
			}
		}
		for _, d := range m.Typedefs() {
			mb.AddMetaNode("typedef", d.Name+" "+d.BaseJavaType())
		}
		for _, c := range m.Classes() {
			meta := "class"
			if s := c.SuperName(); s != "" {
				meta = "class extends " + s
			}
			cb := mb.AddMetaBranch(meta, c.Name)
			for _, mem := range c.Members() {
				cb.AddMetaNode(mem.JavaType(), mem.Name)
			}
		}
		for _, r := range m.RPCs() {
			mb.AddMetaNode("rpc", r.JavaName)
		}
	}
	if len(res.Merges) > 0 {
		rb := tree.AddBranch("merges")
		for _, mr := range res.Merges {
			rb.AddNode(mr.String())
		}
	}
	return tree
}
