package actions

import (
	"context"
	"time"

	"github.com/ledger-works/expense-server/internal/storage"
)

// CleanupKeys deletes idempotency records created before Cutoff. Removing a
// key only forfeits dedup protection for retries older than the retention
// window; the expenses themselves are untouched.
type CleanupKeys struct {
	Cutoff time.Time

	// Removed is the number of deleted records, set on success.
	Removed int64

	IAction
}

func (c *CleanupKeys) Perform(ctx context.Context, writer *storage.Writer) error {
	removed, err := writer.IdempotencyKeys.DeleteExpiredBefore(ctx, c.Cutoff)
	if err != nil {
		return err
	}

	c.Removed = removed
	return nil
}
