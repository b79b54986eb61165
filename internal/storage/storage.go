package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/ledger-works/expense-server/internal/config"
	"github.com/ledger-works/expense-server/internal/storage/expense"
	"github.com/ledger-works/expense-server/internal/storage/idempotency"
)

type Storage struct {
	DB              bob.DB
	Expenses        expense.IExpenseTable
	IdempotencyKeys idempotency.IIdempotencyTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	bobDB := bob.NewDB(db)

	return &Storage{
		DB:              bobDB,
		Expenses:        expense.NewReader(bobDB),
		IdempotencyKeys: idempotency.NewReader(bobDB),
	}, nil
}

// Write opens a transaction and returns a Writer bound to it. The caller owns
// Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	writer := NewWriter(tx)
	return &writer, nil
}
