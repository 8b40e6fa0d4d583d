package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"TechMart/internal/catalog"
	"TechMart/internal/events"
	"TechMart/pkg/kit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides PORT)")
	serveCmd.Flags().String("seed-dsn", "", "postgres DSN to seed from (overrides SEED_DATABASE_URL)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := kit.NewLogger(service, cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	store, err := loadStore(ctx, cfg, log)
	if err != nil {
		log.Error("seed catalog failed", zap.Error(err))
		return err
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = producer.Close() }()
		publisher = producer
		log.Info("publishing change events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := &catalog.Service{
		Store:   store,
		Events:  publisher,
		Metrics: catalog.NewMetrics(reg, store),
		Log:     log,
	}

	h := catalog.NewHandler(
		&catalog.Server{Catalog: svc, StoreName: cfg.StoreName, Log: log},
		catalog.HTTPDeps{
			Log:              log,
			Service:          service,
			Registry:         reg,
			MetricsEnabled:   cfg.MetricsEnabled,
			MetricsToken:     cfg.MetricsToken,
			WriteLimitPerMin: cfg.WriteLimitPerMin,
		},
	)

	return kit.RunHTTPServer(ctx, cfg.Addr(), h, log, cfg.ShutdownTimeout)
}
