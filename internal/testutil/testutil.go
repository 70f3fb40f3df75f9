// Package testutil provides real PostgreSQL and Redis connections for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"byblos-atelier/config"
	"byblos-atelier/internal/database"
	"byblos-atelier/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	pgOnce sync.Once
	pgPool *pgxpool.Pool
	pgErr  error

	redisOnce   sync.Once
	redisClient *redis.Client
	redisErr    error
)

// Postgres returns a migrated pool shared by the whole test binary. It connects to the
// database from LoadTestConfig first and falls back to a throwaway dockertest container.
// The test is skipped when neither is reachable or when -short is set.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pgOnce.Do(func() {
		pgPool, pgErr = connectPostgres()
		if pgErr != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pgErr = database.Migrate(ctx, pgPool)
	})
	if pgErr != nil {
		t.Skipf("postgres unavailable: %v", pgErr)
	}
	return pgPool
}

// Truncate empties every domain table and restarts identities.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"TRUNCATE dashboard_stats, tickets, ticket_types, events, organizers, sellers RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Redis returns a client for the test Redis instance, skipping the test when it is down.
func Redis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	redisOnce.Do(func() {
		cfg := config.LoadTestConfig()
		redisClient, redisErr = database.InitRedis(&cfg.Redis)
	})
	if redisErr != nil {
		t.Skipf("redis unavailable: %v", redisErr)
	}
	if err := redisClient.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
	return redisClient
}

func connectPostgres() (*pgxpool.Pool, error) {
	cfg := config.LoadTestConfig()
	pool, err := database.InitDatabase(&cfg.Database)
	if err == nil {
		return pool, nil
	}
	logger.L.Info("Test database not reachable, starting container", zap.Error(err))

	if os.Getenv("BYBLOS_NO_DOCKER") != "" {
		return nil, err
	}
	return startContainer(cfg.Database)
}

func startContainer(base config.DatabaseConfig) (*pgxpool.Pool, error) {
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("docker pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("docker ping: %w", err)
	}

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + base.User,
			"POSTGRES_PASSWORD=" + base.Password,
			"POSTGRES_DB=" + base.DBName,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}
	// the container outlives a crashed test binary by at most this long
	_ = resource.Expire(300)

	dbCfg := base
	dbCfg.Host = "localhost"
	dbCfg.Port = resource.GetPort("5432/tcp")

	var pool *pgxpool.Pool
	dockerPool.MaxWait = time.Minute
	err = dockerPool.Retry(func() error {
		p, err := database.InitDatabase(&dbCfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		_ = dockerPool.Purge(resource)
		return nil, fmt.Errorf("postgres container not ready: %w", err)
	}
	return pool, nil
}
