package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyflow/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stores is the credential and reservation backend selected by database.driver.
type Stores struct {
	Users        UserRepository
	Reservations ReservationRepository
	Ping         func(ctx context.Context) error
	Close        func()
}

// Open connects the configured backend. The postgres driver migrates the
// schema before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		store := NewMemoryStore()
		return &Stores{
			Users:        store.Users(),
			Reservations: store.Reservations(),
			Ping:         func(context.Context) error { return nil },
			Close:        func() {},
		}, nil
	case config.DriverPostgres, "":
		pool, err := pgxpool.New(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Users:        NewUserRepository(pool),
			Reservations: NewReservationRepository(pool),
			Ping:         pool.Ping,
			Close:        pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
