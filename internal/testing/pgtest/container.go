// Package pgtest starts a throwaway Postgres container for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Container settings
const (
	Image    = "postgres:15-alpine"
	Database = "testdb"
	Username = "testuser"
	Password = "testpass"

	startupTimeout = 30 * time.Second
)

// Start runs a Postgres container and returns its connection string and a
// terminate func. It returns an error instead of panicking when Docker is
// unavailable.
func Start(ctx context.Context) (connStr string, terminate func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	container, err := postgres.Run(ctx,
		Image,
		postgres.WithDatabase(Database),
		postgres.WithUsername(Username),
		postgres.WithPassword(Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	terminate = func() {
		if err := container.Terminate(context.Background()); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	return connStr, terminate, nil
}
