package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DB is the slice of pgx we use. *pgxpool.Pool satisfies it, and so
// does a pgx.Tx, which lets helpers run inside or outside a
// transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// EntityWithVersion is implemented by models embedding Versioned.
// Atomic repository methods condition their UPDATE on the status (or
// ownership) column the caller read; RowVersion rides along so the
// latest row can be handed back on conflict.
type EntityWithVersion interface {
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}
