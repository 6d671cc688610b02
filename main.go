package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/database"
	server "github.com/mauv0809/crease/internal/http"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier/slack"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	rosters := roster.New(db)
	if cfg.RosterFile != "" {
		teams, err := roster.LoadFile(cfg.RosterFile)
		if err != nil {
			log.Fatalf("Failed to load roster file: %s", err)
		}
		if err := roster.Import(context.Background(), rosters, teams); err != nil {
			log.Fatalf("Failed to import roster: %s", err)
		}
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.New(db)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
	}

	opts := []match.Option{match.WithNotifier(notifier), match.WithCounters(counters)}
	if cfg.PublishEvents {
		if pubsubClient == nil {
			log.Fatalf("PUBLISH_EVENTS requires GCP_PROJECT")
		}
		opts = append(opts, match.WithPublisher(pubsubClient))
		log.Info("Publishing match updates to Pub/Sub", "project", cfg.ProjectID)
	}
	matches := match.NewService(store.New(db, store.NewBroker()), rosters, metricsSvc, opts...)

	s := server.NewServer(matches, notifier, metricsSvc, metricsHandler, counters, cfg, pubsubClient)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	// Request contexts derive from baseCtx so open match streams end on shutdown.
	baseCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     s,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(stopStreams)

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
