package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/readiness/config"
	"github.com/c360studio/readiness/proposal"
	"github.com/c360studio/readiness/storage"
)

// App wires together the components a command needs: the draft
// workspace on disk, and optionally NATS-backed storage and graph
// publishing.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	drafts *proposal.Manager

	// NATS (nil until ConnectNATS is called)
	natsClient *natsclient.Client
	store      *storage.Store
}

// newApp creates an application instance for the loaded configuration.
func newApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		drafts: proposal.NewManager(cfg.Proposal.Path),
	}
}

// ConnectNATS connects to NATS and initializes entity storage.
// Commands that only touch the local workspace never call this.
func (a *App) ConnectNATS(ctx context.Context) error {
	natsURL := "nats://localhost:4222"

	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if envURL := os.Getenv("READINESS_NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if a.cfg.NATS.URL != "" {
		natsURL = a.cfg.NATS.URL
	}

	a.logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return wrapNATSError(err, natsURL)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return wrapNATSError(err, natsURL)
	}

	js, err := client.JetStream()
	if err != nil {
		return fmt.Errorf("get JetStream context: %w", err)
	}

	store, err := storage.NewStore(ctx, js)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	a.natsClient = client
	a.store = store

	a.logger.Info("Connected to NATS", "url", natsURL)
	return nil
}

// Close releases the NATS connection if one was established.
func (a *App) Close(ctx context.Context) {
	if a.natsClient != nil {
		a.natsClient.Close(ctx)
	}
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
