package expense

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

// Insert creates a new expense row within the writer's transaction.
func (w *Writer) Insert(ctx context.Context, create *ExpenseCreate) error {
	query := psql.Insert(
		im.Into("expenses", "id", "amount_minor_units", "category", "description", "date", "created_at"),
		im.Values(psql.Arg(
			create.ID,
			create.AmountMinorUnits,
			create.Category,
			create.Description,
			create.Date,
			create.CreatedAt,
		)),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
