package app_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/pinroute/internal/app"
	"github.com/raphaelgruber/pinroute/internal/config"
	"github.com/raphaelgruber/pinroute/internal/hubgraph"
	"github.com/raphaelgruber/pinroute/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_MemoryStore(t *testing.T) {
	cfg := config.Load()
	cfg.Store = config.StoreMemory

	a, err := app.New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer a.Close(context.Background())

	v, err := a.Addresses.Validate(context.Background(), service.ValidateRequest{Pincode: "411001"})
	require.NoError(t, err)
	assert.True(t, v.Found)
	assert.Equal(t, "Pune GPO", v.Locality.OfficeName)

	plan, err := a.Routes.Plan(service.RouteRequest{SourceDistrict: "Mumbai", DestinationDistrict: "Nagpur"})
	require.NoError(t, err)
	assert.Equal(t, int64(815), plan.Summary.TotalDistance)
	assert.NotNil(t, a.Metrics.Snapshot().Route)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Load()
	cfg.AverageSpeedKmh = -1

	_, err := app.New(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}

func TestNew_NonFiniteSpeedIsFatal(t *testing.T) {
	for _, v := range []string{"NaN", "Inf"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("PINROUTE_AVG_SPEED_KMH", v)
			cfg := config.Load()
			cfg.Store = config.StoreMemory

			a, err := app.New(context.Background(), cfg, quietLogger())
			assert.Error(t, err)
			assert.Nil(t, a)
		})
	}
}

func TestNew_BrokenNetworkIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hubs:
  - name: A
    district: Alpha
    connections:
      - {to: Nowhere, distance: 10}
`), 0o600))

	cfg := config.Load()
	cfg.Store = config.StoreMemory
	cfg.NetworkFile = path

	_, err := app.New(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, hubgraph.ErrIntegrity)
}

func TestLoadNetwork_Default(t *testing.T) {
	g, err := app.LoadNetwork("")
	require.NoError(t, err)
	assert.Equal(t, 12, g.Len())
}
