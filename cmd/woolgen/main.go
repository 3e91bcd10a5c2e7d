package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/alpakka/wools/util/cliutil"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var schemaFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a TOML configuration file",
		EnvVars: []string{"WOOLGEN_CONFIG"},
	},
	&cli.BoolFlag{
		Name:  "no-user-config",
		Usage: "do not look for a configuration file in the XDG config directories",
	},
	&cli.StringFlag{
		Name:    "prefix",
		Usage:   "Java package prefix for every generated package",
		EnvVars: []string{"WOOLGEN_PREFIX"},
	},
	&cli.StringSliceFlag{
		Name:    "exclude",
		Usage:   "glob of module names to wrap but leave out of the output (repeatable)",
		EnvVars: []string{"WOOLGEN_EXCLUDE"},
	},
	&cli.BoolFlag{
		Name:    "strict",
		Usage:   "fail on the first warning instead of logging it",
		EnvVars: []string{"WOOLGEN_STRICT"},
	},
}

func run(args []string) error {

	app := cli.App{
		Name:    "woolgen",
		Usage:   "generate Java beans and backend interfaces from YANG modules",
		Version: versioninfo.Short(),
		Flags:   append(cliutil.LogFlags(), tracingFlags...),
	}
	var shutdown func()
	app.Before = func(cctx *cli.Context) error {
		if _, err := cliutil.ConfigLogger(cctx); err != nil {
			return err
		}
		var err error
		shutdown, err = setupTracing(cctx)
		return err
	}
	app.After = func(cctx *cli.Context) error {
		if shutdown != nil {
			shutdown()
		}
		return nil
	}
	app.Commands = []*cli.Command{
		cmdGenerate,
		cmdDescribe,
	}
	return app.Run(args)
}
