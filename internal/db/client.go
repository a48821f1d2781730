// Package db provides SurrealDB storage for locality records with
// auto-reconnect support, plus an in-memory store with the same query surface.
package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

func init() {
	// Force HTTP/1.1 for WSS connections to prevent HTTP/2 ALPN negotiation.
	// WebSocket upgrade requires HTTP/1.1 semantics which fail under HTTP/2.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// Config holds SurrealDB connection configuration.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	AuthLevel string // "root" or "database"
}

// Client wraps SurrealDB connection with auto-reconnect.
type Client struct {
	conn    *rews.Connection[*gorillaws.Connection]
	db      *surrealdb.DB
	cfg     Config
	logger  logger.Logger
	metrics *metrics.Collector
}

// NewClient creates a new SurrealDB client with auto-reconnecting WebSocket.
// log and mc may be nil.
func NewClient(ctx context.Context, cfg Config, log *slog.Logger, mc *metrics.Collector) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	sdkLogger := logger.New(log.Handler())

	// surrealcbor handles SurrealDB's custom CBOR tags
	codec := surrealcbor.New()

	// gorillaws wants the base URL; it appends /rpc itself
	baseURL := strings.TrimSuffix(cfg.URL, "/rpc")

	conn := rews.New(
		func(ctx context.Context) (*gorillaws.Connection, error) {
			ws := gorillaws.New(&connection.Config{
				BaseURL:     baseURL,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      sdkLogger,
			})
			return ws, nil
		},
		5*time.Second,
		codec,
		sdkLogger,
	)

	retryer := rews.NewExponentialBackoffRetryer()
	retryer.InitialDelay = 1 * time.Second
	retryer.MaxDelay = 30 * time.Second
	retryer.Multiplier = 2.0
	retryer.MaxRetries = 10
	conn.Retryer = retryer

	sdkLogger.Info("connecting to SurrealDB", "url", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("from connection: %w", err)
	}

	sdkLogger.Info("authenticating", "user", cfg.Username, "auth_level", cfg.AuthLevel)
	auth := surrealdb.Auth{Username: cfg.Username, Password: cfg.Password}
	if cfg.AuthLevel == "database" {
		auth.Namespace = cfg.Namespace
		auth.Database = cfg.Database
	}
	if _, err := db.SignIn(ctx, auth); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("signin: %w", err)
	}

	sdkLogger.Info("selecting namespace/database", "namespace", cfg.Namespace, "database", cfg.Database)
	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("use: %w", err)
	}

	sdkLogger.Info("SurrealDB connection established")
	return &Client{conn: conn, db: db, cfg: cfg, logger: sdkLogger, metrics: mc}, nil
}

// Close closes the SurrealDB connection.
func (c *Client) Close(ctx context.Context) error {
	c.logger.Info("closing SurrealDB connection")
	return c.conn.Close(ctx)
}

// DB returns the underlying SurrealDB client for queries.
func (c *Client) DB() *surrealdb.DB {
	return c.db
}

// InitSchema initializes the database schema.
func (c *Client) InitSchema(ctx context.Context) error {
	c.logger.Info("initializing database schema")
	if _, err := surrealdb.Query[any](ctx, c.db, SchemaSQL, nil); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	c.logger.Info("schema initialization complete")
	return nil
}

// WipeData deletes all locality records while preserving schema.
func (c *Client) WipeData(ctx context.Context) error {
	c.logger.Warn("wiping all locality records")
	if _, err := surrealdb.Query[any](ctx, c.db, "DELETE locality", nil); err != nil {
		return fmt.Errorf("delete locality: %w", err)
	}
	return nil
}
