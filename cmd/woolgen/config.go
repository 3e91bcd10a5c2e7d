package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alpakka/wools/schema"
	"github.com/alpakka/wools/schema/yangsrc"
	"github.com/alpakka/wools/wool"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v2"
)

const userConfigFile = "woolgen/wool.toml"

// loadConfig reads the configuration file (the --config flag, or else
// woolgen/wool.toml in the XDG config directories) and lays command line
// flags over it.
func loadConfig(cctx *cli.Context) (*wool.Config, error) {
	cfg := &wool.Config{}
	p := cctx.String("config")
	if p == "" && !cctx.Bool("no-user-config") {
		// a missing user config is not an error
		if found, err := xdg.SearchConfigFile(userConfigFile); err == nil {
			slog.Debug("using user configuration", "path", found)
			p = found
		}
	}
	if p != "" {
		loaded, err := wool.LoadConfig(p)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cctx.IsSet("prefix") {
		cfg.Prefix = cctx.String("prefix")
	}
	if cctx.IsSet("exclude") {
		cfg.ExcludeModules = cctx.StringSlice("exclude")
	}
	if cctx.IsSet("strict") {
		cfg.Strict = cctx.Bool("strict")
	}
	// generate-only flags read as unset under describe
	if cctx.IsSet("output-dir") {
		cfg.OutputDir = cctx.String("output-dir")
	}
	if cctx.IsSet("beans-only") {
		cfg.BeansOnly = cctx.Bool("beans-only")
	}
	if cctx.IsSet("interface-levels") {
		cfg.InterfaceLevels = cctx.Int("interface-levels")
	}
	if cp := cctx.String("copyright-file"); cp != "" {
		b, err := os.ReadFile(cp)
		if err != nil {
			return nil, fmt.Errorf("reading copyright: %w", err)
		}
		cfg.Copyright = string(b)
	}
	// policy follows Strict and the process logger
	cfg.Logger = slog.Default()
	cfg.Policy = nil
	return cfg.WithDefaults(), nil
}

func loadCatalog(cctx *cli.Context) (*schema.Catalog, error) {
	if cctx.Args().Len() == 0 {
		return nil, fmt.Errorf("need at least one YANG file or directory")
	}
	return yangsrc.LoadCatalog(slog.Default(), cctx.Args().Slice()...)
}
