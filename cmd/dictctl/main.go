package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/kumarlokesh/radix-dictionary/internal/config"
)

const version = "0.1.0"

// app carries the state shared by every subcommand once Before has run
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	root := &cli.Command{
		Name:      "dictctl",
		Version:   version,
		Usage:     "evaluate dictionary scripts and serve a compressible dictionary",
		Suggest:   true,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Usage:     "path to a config file (yaml, toml or json)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
		},
		Before:   a.before,
		Commands: []*cli.Command{a.evalCommand(), a.serveCommand()},
	}
	root.ExitErrHandler = func(_ context.Context, _ *cli.Command, _ error) {}

	if err := root.Run(context.Background(), args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(stderr, msg)
			}
			return exitErr.ExitCode()
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// before loads configuration and installs the global logger
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return ctx, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return ctx, err
	}

	var out io.Writer = a.stderr
	if cfg.Log.Format == "console" {
		out = zerolog.ConsoleWriter{Out: a.stderr}
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	a.logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = a.logger
	a.cfg = cfg

	a.logger.Debug().Str("config", cmd.String("config")).Msg("Loaded configuration")
	return ctx, nil
}
