package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/kumarlokesh/radix-dictionary/internal/report"
	"github.com/kumarlokesh/radix-dictionary/internal/script"
)

func (a *app) evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "replay test scripts against a fresh dictionary and report pass/fail",
		ArgsUsage: "[script or directory...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "report format: table, markdown or json",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "number of scripts to run at once",
			},
			&cli.StringFlag{
				Name:  "extension",
				Usage: "extension of script files inside directories",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print the operations of scripts named directly",
			},
		},
		Action: a.eval,
	}
}

func (a *app) eval(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("No testcase file provided", 2)
	}

	evalCfg := a.cfg.Eval
	if cmd.IsSet("format") {
		evalCfg.Format = cmd.String("format")
	}
	if cmd.IsSet("workers") {
		evalCfg.Workers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("extension") {
		evalCfg.Extension = cmd.String("extension")
	}
	if cmd.IsSet("verbose") {
		evalCfg.Verbose = cmd.Bool("verbose")
	}

	format, err := report.ParseFormat(evalCfg.Format)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	opts := []script.RunnerOption{
		script.WithLogger(a.logger),
		script.WithWorkers(evalCfg.Workers),
		script.WithExtension(evalCfg.Extension),
	}
	if evalCfg.Verbose && format != report.FormatJSON {
		opts = append(opts, script.WithTrace(a.stdout))
	}
	runner := script.NewRunner(opts...)

	a.logger.Info().Strs("paths", paths).Int("workers", evalCfg.Workers).Msg("Evaluating scripts")
	results, err := runner.RunPaths(ctx, paths...)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return cli.Exit("No script files found", 1)
	}

	if err := report.Write(a.stdout, format, results); err != nil {
		return err
	}
	if format != report.FormatJSON {
		report.WriteFailures(a.stderr, results)
	}

	if !script.Passed(results) {
		return cli.Exit("", 1)
	}
	return nil
}
