package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tordrt/schemamap/internal/config"
	"github.com/tordrt/schemamap/internal/ddl"
	"github.com/tordrt/schemamap/internal/lint"
	"github.com/tordrt/schemamap/internal/logging"
	"github.com/tordrt/schemamap/internal/metrics"
	"github.com/tordrt/schemamap/internal/server"
	"github.com/tordrt/schemamap/internal/store"
)

func newServeCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser, exporters and saved diagrams over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			// explicit flags win over the config file
			level, format := cfg.Logging.Level, cfg.Logging.Format
			if f := cmd.Flag("log-level"); f != nil && f.Changed {
				level = f.Value.String()
			}
			if f := cmd.Flag("log-format"); f != nil && f.Changed {
				format = f.Value.String()
			}
			if err := logging.Setup(level, format, cmd.ErrOrStderr()); err != nil {
				return err
			}

			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: ./schemamap.yaml or ./configs/schemamap.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	diagrams, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := diagrams.Close(); err != nil {
			log.WithError(err).Warn("failed to close diagram store")
		}
	}()

	parserOpts := ddl.Options{
		AllowUnterminated:  cfg.Parser.AllowUnterminated,
		ReportUnrecognized: cfg.Parser.ReportUnrecognized,
	}
	if cfg.Parser.MySQLCheck {
		parserOpts.Checker = lint.NewMySQLChecker(0)
	}

	srv := server.New(server.Options{
		Addr:    cfg.Server.Addr,
		Mode:    cfg.Server.Mode,
		Parser:  ddl.NewParser(parserOpts),
		Store:   diagrams,
		Metrics: metrics.New(),
	})

	log.WithFields(log.Fields{
		"addr":  cfg.Server.Addr,
		"store": cfg.Store.Path,
	}).Info("starting schemamap server")

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
