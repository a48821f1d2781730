// Package app wires configuration into ready-to-use services.
// It is shared by the server binary and the in-process CLI commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/pinroute/internal/config"
	"github.com/raphaelgruber/pinroute/internal/db"
	"github.com/raphaelgruber/pinroute/internal/hubgraph"
	"github.com/raphaelgruber/pinroute/internal/matcher"
	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/service"
)

// App holds all dependencies.
type App struct {
	Addresses *service.AddressService
	Routes    *service.RouteService
	Metrics   *metrics.Collector
	Graph     *hubgraph.Graph

	db *db.Client
}

// New creates an App with all dependencies. The hub network is validated
// here; an inconsistent network is returned as an error.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	mc := metrics.NewCollector()

	g, err := LoadNetwork(cfg.NetworkFile)
	if err != nil {
		return nil, err
	}
	logger.Info("hub network loaded", "hubs", g.Len(), "districts", len(g.Districts()))

	a := &App{Metrics: mc, Graph: g}

	var store service.LocalityStore
	switch cfg.Store {
	case config.StoreSurrealDB:
		client, err := Connect(ctx, cfg, logger, mc)
		if err != nil {
			return nil, err
		}
		a.db = client
		store = client
	default:
		records, err := db.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		mem, err := db.NewMemoryStore(records, mc)
		if err != nil {
			return nil, fmt.Errorf("memory store: %w", err)
		}
		logger.Info("memory store ready", "localities", len(records))
		store = mem
	}

	routes, err := service.NewRouteService(g, cfg.AverageSpeedKmh, mc)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Routes = routes
	a.Addresses = service.NewAddressService(store, mc,
		matcher.WithThreshold(cfg.MatchThreshold),
		matcher.WithLenientFloor(cfg.LenientFloor),
	)
	return a, nil
}

// LoadNetwork loads the hub network from path, or the built-in network when
// path is empty.
func LoadNetwork(path string) (*hubgraph.Graph, error) {
	if path == "" {
		g, err := hubgraph.Default()
		if err != nil {
			return nil, fmt.Errorf("built-in network: %w", err)
		}
		return g, nil
	}
	g, err := hubgraph.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	return g, nil
}

// Connect opens a SurrealDB client from cfg and ensures the schema exists.
func Connect(ctx context.Context, cfg config.Config, logger *slog.Logger, mc *metrics.Collector) (*db.Client, error) {
	dbCfg := db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}

	client, err := db.NewClient(ctx, dbCfg, logger, mc)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := client.InitSchema(ctx); err != nil {
		client.Close(ctx)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return client, nil
}

// Close closes all connections.
func (a *App) Close(ctx context.Context) error {
	if a.db != nil {
		return a.db.Close(ctx)
	}
	return nil
}
