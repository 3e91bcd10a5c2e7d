package main

import (
	"fmt"
	"log/slog"

	"github.com/alpakka/wools/wool"
	"github.com/alpakka/wools/wool/emit"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

var cmdGenerate = &cli.Command{
	Name:      "generate",
	Aliases:   []string{"gen"},
	Usage:     "wrap YANG modules and write Java sources",
	ArgsUsage: `<path>...`,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "directory to write generated sources to",
			EnvVars: []string{"WOOLGEN_OUTPUT_DIR"},
		},
		&cli.BoolFlag{
			Name:    "beans-only",
			Usage:   "skip the backend interface of every module",
			EnvVars: []string{"WOOLGEN_BEANS_ONLY"},
		},
		&cli.IntFlag{
			Name:    "interface-levels",
			Usage:   "how deep to look for keyed lists when importing into the backend interface",
			EnvVars: []string{"WOOLGEN_INTERFACE_LEVELS"},
		},
		&cli.StringFlag{
			Name:    "copyright-file",
			Usage:   "text file placed as a comment at the top of every Java source",
			EnvVars: []string{"WOOLGEN_COPYRIGHT_FILE"},
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "write run metrics to this file in Prometheus text format",
			EnvVars: []string{"WOOLGEN_METRICS_FILE"},
		},
	}, schemaFlags...),
	Action: runGenerate,
}

func runGenerate(cctx *cli.Context) error {
	ctx := cctx.Context

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
	res, err := batch.Run(ctx)
	if err != nil {
		return err
	}

	em, err := emit.New(cfg)
	if err != nil {
		return err
	}
	n, err := em.Write(res)
	if err != nil {
		return err
	}
	slog.Info("generation complete", "files", n, "warnings", len(res.Warnings), "dir", cfg.OutputDir)

	if p := cctx.String("metrics-file"); p != "" {
		if err := prometheus.WriteToTextfile(p, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
