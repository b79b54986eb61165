package expense

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category is the fixed set of expense categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

// AllCategories lists every valid category in display order.
var AllCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealth,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, category := range AllCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Expense represents an expense record. Amounts are stored as integer minor
// units; the decimal display value is derived at the API boundary.
type Expense struct {
	ID               uuid.UUID `db:"id"`
	AmountMinorUnits int64     `db:"amount_minor_units"`
	Category         Category  `db:"category"`
	Description      string    `db:"description"`
	Date             time.Time `db:"date"`
	CreatedAt        time.Time `db:"created_at"`
}

// ExpenseCreate is the input for inserting a new expense.
type ExpenseCreate struct {
	ID               uuid.UUID
	AmountMinorUnits int64
	Category         Category
	Description      string
	Date             time.Time
	CreatedAt        time.Time
}

// ExpenseFilter specifies filters for listing expenses.
type ExpenseFilter struct {
	Category      Category // empty means all categories
	SortAscending bool     // by date; default is newest first
}

// CategorySummary is one row of the per-category totals aggregate.
type CategorySummary struct {
	Category        Category `db:"category"`
	TotalMinorUnits int64    `db:"total_minor_units"`
}

// IExpenseTable defines the interface for expense read operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IExpenseTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	List(ctx context.Context, filter *ExpenseFilter) ([]*Expense, error)
	SummarizeByCategory(ctx context.Context) ([]*CategorySummary, error)
}
