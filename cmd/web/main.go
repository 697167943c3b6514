package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/de-tools/maturity-atlas/pkg/metrics"
	"github.com/de-tools/maturity-atlas/pkg/server"
	"github.com/de-tools/maturity-atlas/pkg/services/admin"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/de-tools/maturity-atlas/pkg/services/assessment"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/services/config"
	"github.com/de-tools/maturity-atlas/pkg/services/content"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/de-tools/maturity-atlas/pkg/store/kv/azure"
	"github.com/de-tools/maturity-atlas/pkg/store/kv/badger"
	"github.com/de-tools/maturity-atlas/pkg/store/kv/s3"
	"github.com/de-tools/maturity-atlas/pkg/store/kv/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for Maturity Atlas",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (settings may also come from MATURITY_* env vars)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	ctx, stop := signal.NotifyContext(logger.WithContext(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores := kv.NewRegistry(map[string]kv.StoreFactory{
		"memory": kv.MemoryFactory,
		"badger": badger.Factory,
		"sqlite": sqlite.Factory,
		"s3":     s3.Factory,
		"azure":  azure.Factory,
	})
	store, err := stores.Open(ctx, cfg.Store.Backend, kv.Options{
		Path:     cfg.Store.Path,
		InMemory: cfg.Store.InMemory,
		Bucket:   cfg.Store.Bucket,
		Prefix:   cfg.Store.Prefix,
		Region:   cfg.Store.Region,
		Endpoint: cfg.Store.Endpoint,

		ConnectionString: cfg.Store.ConnectionString,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()
	logger.Info().Str("backend", cfg.Store.Backend).Msg("store opened")

	var matrix *controls.Matrix
	if cfg.Controls.Path != "" {
		matrix, err = controls.Load(cfg.Controls.Path)
		if err != nil {
			return fmt.Errorf("failed to load controls matrix: %w", err)
		}
		logger.Info().Int("controls", len(matrix.All())).Msg("controls matrix loaded")
	}

	overrides, err := cfg.Benchmark.DomainOverrides()
	if err != nil {
		return err
	}
	benchmarks := benchmark.NewSource(benchmark.Config{
		Reference: cfg.Benchmark.Reference,
		Overrides: overrides,
	}, store)

	assessments, err := assessment.NewService(assessment.Dependencies{
		Store:      store,
		Benchmarks: benchmarks,
		Controls:   matrix,
	})
	if err != nil {
		return fmt.Errorf("failed to create assessment service: %w", err)
	}

	pages := content.NewService(store, nil)
	if cfg.Content.SeedPath != "" {
		n, err := pages.Seed(ctx, cfg.Content.SeedPath)
		if err != nil {
			return fmt.Errorf("failed to seed content: %w", err)
		}
		logger.Info().Int("pages", n).Str("path", cfg.Content.SeedPath).Msg("content seeded")
	}

	sessions := admin.NewSessions(cfg.Admin.Password, cfg.Admin.SessionTTL)
	if !sessions.Enabled() {
		logger.Warn().Msg("admin password not set, admin API disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	fwdCfg := analytics.DefaultConfig()
	fwdCfg.Endpoint = cfg.Analytics.Endpoint
	fwdCfg.APIKey = cfg.Analytics.APIKey
	fwdCfg.QueueSize = cfg.Analytics.QueueSize
	fwdCfg.BatchSize = cfg.Analytics.BatchSize
	fwdCfg.FlushInterval = cfg.Analytics.FlushInterval
	fwdCfg.RatePerSecond = cfg.Analytics.RatePerSecond
	fwdCfg.RetryMax = cfg.Analytics.RetryMax
	forwarder := analytics.NewForwarder(fwdCfg, m)

	webAPI := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Assessments: assessments,
			Content:     pages,
			Benchmarks:  benchmarks,
			Controls:    matrix,
			Sessions:    sessions,
			Tracker:     forwarder,
			Metrics:     m,
			Gatherer:    reg,
			Logger:      logger,
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		forwarder.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return webAPI.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().
		Int64("events_sent", forwarder.Sent()).
		Int64("events_dropped", forwarder.Dropped()).
		Msg("server stopped")
	return nil
}
