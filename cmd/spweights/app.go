package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/spweights/config"
	"github.com/katalvlaran/spweights/logger"
)

// runtime is the per-invocation state prepared by the root Before hook.
type runtime struct {
	out   io.Writer
	cfg   *config.Config
	runID string
	log   logger.Logger
}

func newApp(out io.Writer) *cli.Command {
	rt := &runtime{out: out, cfg: config.Default()}
	var (
		configPath string
		logLevel   string
		logFormat  string
	)

	return &cli.Command{
		Name:  "spweights",
		Usage: "Build, convert and inspect spatial weights; run the automatic model search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file (default: $" + config.EnvConfigPath + ", ./" + config.ConfigFileName + ", user config dir)",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (text, json)",
				Value:       "text",
				Destination: &logFormat,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, path, err := loadConfig(configPath)
			if err != nil {
				return ctx, err
			}
			rt.cfg = cfg
			if !c.IsSet("log-level") {
				logLevel = cfg.Log.Level
			}
			if !c.IsSet("log-format") {
				logFormat = cfg.Log.Format
			}

			rt.runID = uuid.NewString()
			rt.log = logger.ForFormat(os.Stderr, logFormat, logger.ParseLevel(logLevel)).With("run_id", rt.runID)
			if path != "" {
				rt.log.Debug("config loaded", "path", path)
			}
			return logger.WithContext(ctx, rt.log), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			contiguityCmd(rt),
			distanceCmd(rt),
			kernelCmd(rt),
			convertCmd(rt),
			inspectCmd(rt),
			automodelCmd(rt),
		},
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func (rt *runtime) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(rt.out, format, args...)
}
