package idempotency

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Record maps a client idempotency key to the expense created for it.
// Records are written once, never updated, and removed by the sweep once
// older than the retention window.
type Record struct {
	Key       string    `db:"key"`
	ExpenseID uuid.UUID `db:"expense_id"`
	CreatedAt time.Time `db:"created_at"`
}

// RecordCreate is the input for inserting a new idempotency record.
type RecordCreate struct {
	Key       string
	ExpenseID uuid.UUID
	CreatedAt time.Time
}

// IIdempotencyTable defines the interface for idempotency-key read operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IIdempotencyTable interface {
	FindByKey(ctx context.Context, key string) (*Record, error)
}
