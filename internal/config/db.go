package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car_rental/internal/logger"
	"car_rental/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectRetries       = 5
	connectRetryInterval = 5 * time.Second
)

// ConnectDB establishes a connection pool to PostgreSQL, retrying while the database comes up.
func ConnectDB(ctx context.Context, cfg DBConfig, log logger.ILogger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	var pool *pgxpool.Pool
	for i := 0; i < connectRetries; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info("connected to postgres", logger.String("host", cfg.Host), logger.String("db", cfg.Name))
				return pool, nil
			}
			pool.Close()
		}
		log.Warning("failed to connect to postgres, retrying",
			logger.Int("attempt", i+1),
			logger.Int("max_attempts", connectRetries),
			logger.Duration("retry_in", connectRetryInterval),
			logger.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", connectRetries, err)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(cfg DBConfig, log logger.ILogger) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Info("migrations applied successfully")
	return nil
}
