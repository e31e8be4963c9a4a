package config

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/Taichi-iskw/ytmeta/internal/errors"
)

// ConnectTimeout bounds pool creation and the initial ping
const ConnectTimeout = 10 * time.Second

// PoolConfig builds the pgxpool configuration for database_url
func (p *Params) PoolConfig() (*pgxpool.Config, error) {
	dbConfig, err := p.ParseDatabaseConfig()
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(dbConfig.ConnectionString())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeParams, "invalid database_url")
	}

	poolConfig.MaxConns = dbConfig.MaxConns
	poolConfig.MinConns = dbConfig.MinConns
	poolConfig.MaxConnLifetime = dbConfig.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	return poolConfig, nil
}

// NewDatabasePool connects to the archive database and checks it answers
func NewDatabasePool(ctx context.Context, params *Params) (*pgxpool.Pool, error) {
	poolConfig, err := params.PoolConfig()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "database is not reachable")
	}

	return pool, nil
}
