package expense

import (
	"time"

	"github.com/ledger-works/expense-server/internal/money"
	"github.com/ledger-works/expense-server/internal/service"
)

// Expense is the API response model for an expense.
// It is used only for responses, not for request bodies. Amount carries the
// decimal display value; amountMinorUnits is the exact stored integer,
// exposed as a secondary debug field.
type Expense struct {
	ID               string `json:"id" doc:"Expense UUID"`
	Amount           string `json:"amount" doc:"Decimal display amount"`
	AmountMinorUnits int64  `json:"amountMinorUnits" doc:"Exact amount in integer minor units"`
	Category         string `json:"category" doc:"Expense category"`
	Description      string `json:"description" doc:"Description of the expense"`
	Date             string `json:"date" doc:"RFC3339 expense date"`
	CreatedAt        string `json:"createdAt" doc:"RFC3339 creation time"`
}

func expenseFromService(row *service.Expense) Expense {
	return Expense{
		ID:               row.ID.String(),
		Amount:           money.Display(row.AmountMinorUnits),
		AmountMinorUnits: row.AmountMinorUnits,
		Category:         string(row.Category),
		Description:      row.Description,
		Date:             row.Date.Format(time.RFC3339),
		CreatedAt:        row.CreatedAt.Format(time.RFC3339),
	}
}
