package idempotency

import (
	"context"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new idempotency record. The primary key on the key column
// makes this the arbiter when two requests race on the same key: exactly one
// insert commits, the other fails with a unique violation.
func (w *Writer) Insert(ctx context.Context, create *RecordCreate) error {
	query := psql.Insert(
		im.Into("idempotency_keys", "key", "expense_id", "created_at"),
		im.Values(psql.Arg(create.Key, create.ExpenseID, create.CreatedAt)),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

// DeleteByKey removes the record for a key. Deleting an absent key is a no-op.
func (w *Writer) DeleteByKey(ctx context.Context, key string) error {
	query := psql.Delete(
		dm.From("idempotency_keys"),
		dm.Where(psql.Quote("key").EQ(psql.Arg(key))),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

// DeleteExpiredBefore removes every record created before the cutoff and
// returns how many were deleted.
func (w *Writer) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := psql.Delete(
		dm.From("idempotency_keys"),
		dm.Where(psql.Quote("created_at").LT(psql.Arg(cutoff))),
	)

	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
