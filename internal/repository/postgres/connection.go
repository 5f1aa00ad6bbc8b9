package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abriand/user-registry-server/database"
)

// Connection is a pgx connection pool shared by all repositories.
type Connection struct {
	*pgxpool.Pool
}

// ConnectionOptions tune pool behaviour.
type ConnectionOptions struct {
	ConnectTimeout time.Duration
}

// NewConnection opens a connection pool and applies schema migrations.
func NewConnection(ctx context.Context, dsn string, opts ConnectionOptions) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if opts.ConnectTimeout > 0 {
		conf.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		Pool: pool,
	}, nil
}

// Close releases the pool.
func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

// Ping checks pool health.
func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}
