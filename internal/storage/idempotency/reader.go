package idempotency

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByKey retrieves the record for a key. An unseen key is not an error;
// it returns (nil, nil).
func (r *Reader) FindByKey(ctx context.Context, key string) (*Record, error) {
	query := psql.Select(
		sm.Columns("key", "expense_id", "created_at"),
		sm.From("idempotency_keys"),
		sm.Where(psql.Quote("key").EQ(psql.Arg(key))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Record]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
