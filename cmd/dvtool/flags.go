package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dvfile/internal/logger"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	cfg Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file",
			Value:       configPath(),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// coordFlags are the section coordinates shared by read and export.
func coordFlags(t, c, z *int) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "t", Usage: "time point", Destination: t},
		&cli.IntFlag{Name: "c", Aliases: []string{"w"}, Usage: "wavelength (channel)", Destination: c},
		&cli.IntFlag{Name: "z", Usage: "Z section", Destination: z},
	}
}

// setupLogging loads the config file and installs the logger into ctx.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := LoadConfig(configFile)
	if err != nil {
		return ctx, err
	}
	cfg = loaded
	applyLoggingConfig(cmd, cfg, &logLevel, &logFormat)

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	log := logger.NewFor(os.Stderr, logger.ParseFormat(logFormat), level)
	log.Debug("config loaded", "path", configFile)
	return logger.WithContext(ctx, log), nil
}

func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one file argument", cmd.Name)
	}
	return cmd.Args().First(), nil
}
