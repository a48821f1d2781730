// Package config loads pinroute settings from the environment and sets up logging.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StoreMemory    = "memory"
	StoreSurrealDB = "surrealdb"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	ServerPort     string
	RequestTimeout time.Duration

	// Locality store
	Store    string
	SeedFile string

	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Hub network; empty means the built-in Maharashtra network
	NetworkFile string

	// Matching and routing policy
	MatchThreshold  int
	LenientFloor    int
	AverageSpeedKmh float64

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// Malformed numbers fall back to their defaults; Validate catches values
// that parse but make no sense.
func Load() Config {
	return Config{
		ServerPort:     getEnv("PINROUTE_SERVER_PORT", "8585"),
		RequestTimeout: getDuration("PINROUTE_REQUEST_TIMEOUT", 10*time.Second),

		Store:    strings.ToLower(getEnv("PINROUTE_STORE", StoreMemory)),
		SeedFile: getEnv("PINROUTE_SEED_FILE", ""),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "postal"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "pincodes"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		NetworkFile: getEnv("PINROUTE_NETWORK_FILE", ""),

		MatchThreshold:  getInt("PINROUTE_MATCH_THRESHOLD", 70),
		LenientFloor:    getInt("PINROUTE_LENIENT_FLOOR", 50),
		AverageSpeedKmh: getFloat("PINROUTE_AVG_SPEED_KMH", 40),

		LogFile:  getEnv("PINROUTE_LOG_FILE", "/tmp/pinroute.log"),
		LogLevel: parseLogLevel(getEnv("PINROUTE_LOG_LEVEL", "INFO")),
	}
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		errs = append(errs, fmt.Errorf("match threshold %d not in [0,100]", c.MatchThreshold))
	}
	if c.LenientFloor < 0 || c.LenientFloor > c.MatchThreshold {
		errs = append(errs, fmt.Errorf("lenient floor %d not in [0,%d]", c.LenientFloor, c.MatchThreshold))
	}
	if !(c.AverageSpeedKmh > 0) || math.IsInf(c.AverageSpeedKmh, 0) {
		errs = append(errs, fmt.Errorf("average speed %v km/h must be a finite positive number", c.AverageSpeedKmh))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout %s must be positive", c.RequestTimeout))
	}
	if c.Store != StoreMemory && c.Store != StoreSurrealDB {
		errs = append(errs, fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreSurrealDB))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
