package pgxstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"order-status/pkg/timeutils"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

type DBFactory interface {
	Create() (*pgxpool.Pool, error)
}

type Config struct {
	// Delays between connection attempts. One attempt per entry; empty means a single attempt.
	RetryAttemptDelays []time.Duration
	PingTimeout        time.Duration
}

// DBStorage is a read-mostly pgx pool wrapper. The join supplier never writes;
// Exec exists for migrations and fixtures.
type DBStorage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dbFactory DBFactory, cfg Config) (*DBStorage, error) {
	pool, err := dbFactory.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	storage := &DBStorage{
		pool: pool,
	}
	if err := storage.waitReady(ctx, cfg); err != nil {
		pool.Close()
		return nil, err
	}
	return storage, nil
}

func (s *DBStorage) waitReady(ctx context.Context, cfg Config) error {
	delays := cfg.RetryAttemptDelays
	if len(delays) == 0 {
		delays = []time.Duration{0}
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	var lastErr error
	_, err := timeutils.Retry(
		ctx,
		delays,
		func(ctx context.Context) (struct{}, error) {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			return struct{}{}, s.pool.Ping(pingCtx)
		},
		func(_ struct{}, err error) bool {
			lastErr = err
			return err != nil
		},
	)
	if err != nil {
		if errors.Is(err, timeutils.ErrAllAttemptsFailed) && lastErr != nil {
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, lastErr)
		}
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *DBStorage) Close() {
	s.pool.Close()
}

func (s *DBStorage) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return s.pool.Exec(ctx, query, args...) //nolint:wrapcheck // unnecessary
}

func (s *DBStorage) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return s.pool.Query(ctx, query, args...) //nolint:wrapcheck // unnecessary
}
