package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ledger-works/expense-server/internal/storage/expense"
)

// Expense represents an expense in the service layer.
type Expense struct {
	ID               uuid.UUID
	AmountMinorUnits int64
	Category         expense.Category
	Description      string
	Date             time.Time
	CreatedAt        time.Time
}

// ExpenseCreate is the already-validated payload for creating an expense.
// Amount is the decimal display value; it is converted to minor units exactly
// once, before anything is persisted.
type ExpenseCreate struct {
	Amount      float64
	Category    expense.Category
	Description string
	Date        time.Time
}

// ExpenseFilter specifies filters for listing expenses.
type ExpenseFilter struct {
	Category      expense.Category // empty means all categories
	SortAscending bool
}

// CategorySummary is the summed amount for one category.
type CategorySummary struct {
	Category        expense.Category
	TotalMinorUnits int64
}

func expenseFromStorage(row *expense.Expense) *Expense {
	return &Expense{
		ID:               row.ID,
		AmountMinorUnits: row.AmountMinorUnits,
		Category:         row.Category,
		Description:      row.Description,
		Date:             row.Date,
		CreatedAt:        row.CreatedAt,
	}
}
