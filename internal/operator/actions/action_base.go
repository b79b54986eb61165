package actions

import (
	"context"

	"github.com/ledger-works/expense-server/internal/storage"
)

// IAction is one unit of transactional work. Perform runs inside a single
// storage transaction; the operator commits on nil and rolls back on error.
// Actions carry their results in exported fields, filled in by Perform.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
