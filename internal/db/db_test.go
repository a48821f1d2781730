//go:build integration

package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/raphaelgruber/pinroute/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *Client
var testContainer testcontainers.Container

// TestMain starts a SurrealDB container shared by all tests in the package.
func TestMain(m *testing.M) {
	// ryuk fails in some CI sandboxes
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	testDB, err = NewClient(ctx, Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, nil, nil)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = testContainer.Terminate(ctx)

	os.Exit(code)
}

// reseed wipes the table and inserts the built-in seed records.
func reseed(t *testing.T) int {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, testDB.WipeData(ctx))
	records, err := LoadSeedFile("")
	require.NoError(t, err)
	n, err := testDB.InsertLocalities(ctx, records)
	require.NoError(t, err)
	require.Equal(t, len(records), n)
	return n
}

func TestInsertAndCount(t *testing.T) {
	n := reseed(t)

	count, err := testDB.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestInsertRejectsDuplicates(t *testing.T) {
	reseed(t)

	_, err := testDB.InsertLocalities(context.Background(), []models.Locality{
		{Pincode: "442107", OfficeName: "Sawangi Meghe", District: "Wardha", OfficeType: models.BranchOffice},
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestInsertRejectsInvalid(t *testing.T) {
	_, err := testDB.InsertLocalities(context.Background(), []models.Locality{
		{Pincode: "12", OfficeName: "Bad", District: "Wardha"},
	})
	assert.ErrorIs(t, err, models.ErrInvalidLocality)
}

func TestFindByPincode(t *testing.T) {
	reseed(t)
	ctx := context.Background()

	l, err := testDB.FindByPincode(ctx, "442107")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "Sawangi Meghe", l.OfficeName)
	assert.Equal(t, models.BranchOffice, l.OfficeType)
	assert.NotNil(t, l.ID)

	l, err = testDB.FindByPincode(ctx, "999999")
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestFindByDistrict(t *testing.T) {
	reseed(t)
	ctx := context.Background()

	got, err := testDB.FindByDistrict(ctx, "WARDHA")
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, "442001", got[0].Pincode)

	all, err := testDB.All(ctx)
	require.NoError(t, err)
	count, err := testDB.Count(ctx)
	require.NoError(t, err)
	assert.Len(t, all, count)
}

func TestSearch(t *testing.T) {
	reseed(t)

	got, err := testDB.Search(context.Background(), "sevagram", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Sevagram", got[0].OfficeName)
}
