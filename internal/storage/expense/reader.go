package expense

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "amount_minor_units", "category", "description", "date", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves an expense by primary key. A missing row is not an
// error; it returns (nil, nil).
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("expenses"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Expense]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns expenses matching the filter, ordered by date. Nil filter
// returns everything, newest first.
func (r *Reader) List(ctx context.Context, filter *ExpenseFilter) ([]*Expense, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("expenses"),
	}

	sortAscending := false
	if filter != nil {
		if filter.Category != "" {
			queryMods = append(queryMods, sm.Where(psql.Quote("category").EQ(psql.Arg(filter.Category))))
		}
		sortAscending = filter.SortAscending
	}

	if sortAscending {
		queryMods = append(queryMods, sm.OrderBy("date").Asc())
	} else {
		queryMods = append(queryMods, sm.OrderBy("date").Desc())
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Expense]())
	if err != nil {
		return nil, err
	}

	result := make([]*Expense, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// SummarizeByCategory returns the summed minor-unit amount per category,
// largest total first.
func (r *Reader) SummarizeByCategory(ctx context.Context) ([]*CategorySummary, error) {
	query := psql.RawQuery(
		"SELECT category, COALESCE(SUM(amount_minor_units), 0) AS total_minor_units " +
			"FROM expenses GROUP BY category ORDER BY total_minor_units DESC",
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[CategorySummary]())
	if err != nil {
		return nil, err
	}

	result := make([]*CategorySummary, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
