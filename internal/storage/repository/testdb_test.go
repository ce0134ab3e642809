package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/NikolaMax/ticketing-backend/internal/migrations"
	"github.com/NikolaMax/ticketing-backend/internal/models"
)

// setupTestDatabase starts a throwaway postgres container, applies the
// migrations and returns a connected Storage with its cleanup.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	storage, err := New(connStr)
	require.NoError(t, err, "failed to connect to database")

	require.NoError(t, migrations.Run(storage.DB, "../../../migrations"), "failed to run migrations")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}

// testDataFactory seeds users, locations, events and tickets.
type testDataFactory struct {
	storage *Storage
}

func newTestDataFactory(storage *Storage) *testDataFactory {
	return &testDataFactory{storage: storage}
}

func (f *testDataFactory) createUser(t *testing.T, username, email, passwordHash string, role models.Role, enabled bool) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, password_hash, role, enabled)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		username, email, passwordHash, role.String(), enabled).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *testDataFactory) createLocation(t *testing.T, name string) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO locations (name, address)
		VALUES ($1, '') RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *testDataFactory) createEvent(t *testing.T, name string, locationID int64, startsAt time.Time) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO events (name, location_id, starts_at, ends_at)
		VALUES ($1, $2, $3, $3 + INTERVAL '1 day') RETURNING id`,
		name, locationID, startsAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *testDataFactory) createTicket(t *testing.T, eventID int64, price float64, sold bool, saleDate time.Time) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO tickets (event_id, price, sold, sale_date)
		VALUES ($1, $2, $3, $4)`, eventID, price, sold, saleDate)
	require.NoError(t, err)
}
