package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kumarlokesh/radix-dictionary/internal/api"
	"github.com/kumarlokesh/radix-dictionary/internal/dictionary"
)

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve a dictionary over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides server.host and server.port",
			},
		},
		Action: a.serve,
	}
}

func (a *app) serve(ctx context.Context, cmd *cli.Command) error {
	addr := a.cfg.Server.Addr()
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	dict := dictionary.New(dictionary.WithLogger(a.logger))
	server := api.NewServer(addr, dict, a.logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-stop:
		a.logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("Error during server shutdown")
		return err
	}
	a.logger.Info().Msg("Server gracefully stopped")
	return nil
}
