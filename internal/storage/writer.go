package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/ledger-works/expense-server/internal/storage/expense"
	"github.com/ledger-works/expense-server/internal/storage/idempotency"
)

type Writer struct {
	tx              bob.Tx
	Expenses        *expense.Writer
	IdempotencyKeys *idempotency.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:              tx,
		Expenses:        expense.NewWriter(tx),
		IdempotencyKeys: idempotency.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
