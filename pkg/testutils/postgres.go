package testutils

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dskvich/supatools/pkg/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

//go:embed roles.sql
var rolesSQL string

// SetupPostgres returns connection options for a throwaway Postgres with the
// anon, authenticated and service_role roles in place. TEST_DB_DSN points the
// tests at an existing database instead of starting a container.
func SetupPostgres(t *testing.T) database.Options {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = startContainer(t)
	}
	opts := database.Options{URL: dsn}

	db, err := database.NewDB(opts)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(context.Background(), rolesSQL)
	require.NoError(t, err)

	return opts
}

func startContainer(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "supatools",
		},
		ExposedPorts: []string{"5432/tcp"},
		// initdb restarts the server once, so the line shows up twice.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pg.Terminate(context.Background())
	})

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://test:test@%s:%s/supatools?sslmode=disable", host, port.Port())
}
