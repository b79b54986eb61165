package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ledger-works/expense-server/internal/storage"
	"github.com/ledger-works/expense-server/internal/storage/expense"
	"github.com/ledger-works/expense-server/internal/storage/idempotency"
)

// CreateExpense persists a new expense and its idempotency record in one
// transaction. Either both rows commit or neither does. If the insert of the
// key row loses a race to a concurrent request, the transaction fails with a
// unique violation and the caller re-reads the winner's expense.
type CreateExpense struct {
	ID               uuid.UUID
	Key              string
	AmountMinorUnits int64
	Category         expense.Category
	Description      string
	Date             time.Time

	// ReplaceStaleKey removes an existing key row first. Set only when the
	// caller observed a record whose expense no longer exists.
	ReplaceStaleKey bool

	// Result is the persisted expense, set on success.
	Result *expense.Expense

	IAction
}

func (c *CreateExpense) Perform(ctx context.Context, writer *storage.Writer) error {
	now := time.Now().UTC()

	create := &expense.ExpenseCreate{
		ID:               c.ID,
		AmountMinorUnits: c.AmountMinorUnits,
		Category:         c.Category,
		Description:      c.Description,
		Date:             c.Date,
		CreatedAt:        now,
	}
	if err := writer.Expenses.Insert(ctx, create); err != nil {
		return err
	}

	if c.ReplaceStaleKey {
		if err := writer.IdempotencyKeys.DeleteByKey(ctx, c.Key); err != nil {
			return err
		}
	}

	record := &idempotency.RecordCreate{
		Key:       c.Key,
		ExpenseID: c.ID,
		CreatedAt: now,
	}
	if err := writer.IdempotencyKeys.Insert(ctx, record); err != nil {
		return err
	}

	c.Result = &expense.Expense{
		ID:               c.ID,
		AmountMinorUnits: c.AmountMinorUnits,
		Category:         c.Category,
		Description:      c.Description,
		Date:             c.Date,
		CreatedAt:        now,
	}

	return nil
}
