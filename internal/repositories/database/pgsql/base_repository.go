package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the shared connection pool for all repositories.
// Every operation is a single statement; no multi-statement transaction
// scoping exists in this service.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
