//go:build integration
// +build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"freshcart/internal/repositories"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL container and returns its connection string.
func setupPostgres(t *testing.T) string {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("freshcart"),
		postgres.WithUsername("freshcart"),
		postgres.WithPassword("freshcart"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

// setupMongo starts a MongoDB container and returns its URI.
func setupMongo(t *testing.T) string {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start MongoDB container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestPostgresStore(t *testing.T) {
	dsn := setupPostgres(t)

	// Each sub-suite gets a clean schema.
	runStoreSuite(t, func() *repositories.Store {
		store, err := repositories.Open(context.Background(), repositories.StoreConfig{
			Driver: repositories.DriverPostgres,
			DSN:    dsn,
		})
		require.NoError(t, err)
		db, err := repositories.OpenGORM(repositories.DriverPostgres, dsn)
		require.NoError(t, err)
		require.NoError(t, db.Exec("TRUNCATE users, products, carts, orders").Error)
		t.Cleanup(func() { _ = store.Close(context.Background()) })
		return store
	})
}

func TestMongoStore(t *testing.T) {
	uri := setupMongo(t)

	n := 0
	runStoreSuite(t, func() *repositories.Store {
		n++
		store, err := repositories.Open(context.Background(), repositories.StoreConfig{
			Driver:   repositories.DriverMongo,
			MongoURI: uri,
			MongoDB:  fmt.Sprintf("freshcart_test_%d", n),
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close(context.Background()) })
		return store
	})
}
