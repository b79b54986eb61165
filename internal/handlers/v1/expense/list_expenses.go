package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledger-works/expense-server/internal/logging"
	"github.com/ledger-works/expense-server/internal/service"
	storeexpense "github.com/ledger-works/expense-server/internal/storage/expense"
)

const (
	sortDateDesc = "date_desc"
	sortDateAsc  = "date_asc"
)

// ListExpensesInput is the Huma input for listing expenses.
type ListExpensesInput struct {
	Category string `query:"category" enum:"Food,Transport,Shopping,Bills,Entertainment,Health,Other" required:"false" doc:"Filter by category"`
	Sort     string `query:"sort" enum:"date_desc,date_asc" default:"date_desc" doc:"Date sort order"`
}

// ListExpensesResponseBody is the response body for listing expenses.
type ListExpensesResponseBody struct {
	Expenses []Expense `json:"expenses" doc:"Expenses matching the filter"`
	Count    int       `json:"count" doc:"Number of expenses returned"`
}

// ListExpensesOutput is the Huma output for listing expenses.
type ListExpensesOutput struct {
	Body ListExpensesResponseBody
}

// expenseLister is the interface for listing expenses.
type expenseLister interface {
	ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]service.Expense, error)
}

// ListExpensesHandler handles GET /v1/expenses.
type ListExpensesHandler struct {
	ExpenseService expenseLister
}

// NewListExpensesHandler creates a new ListExpensesHandler.
func NewListExpensesHandler(svc expenseLister) *ListExpensesHandler {
	return &ListExpensesHandler{ExpenseService: svc}
}

// Register registers the list expenses endpoint with the Huma API.
func (h *ListExpensesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-expenses",
		Method:      http.MethodGet,
		Path:        "/v1/expenses",
		Summary:     "List expenses",
		Description: "Returns expenses, optionally filtered by category, ordered by date.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *ListExpensesHandler) handle(ctx context.Context, input *ListExpensesInput) (*ListExpensesOutput, error) {
	logData := logging.GetLogData(ctx)

	filter := service.ExpenseFilter{
		Category:      storeexpense.Category(input.Category),
		SortAscending: input.Sort == sortDateAsc,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listExpensesMs")
	}
	expenses, err := h.ExpenseService.ListExpenses(ctx, filter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list expenses", err)
	}

	if logData != nil {
		logData.AddData("expenseCount", len(expenses))
	}

	resp := ListExpensesResponseBody{
		Expenses: make([]Expense, len(expenses)),
		Count:    len(expenses),
	}
	for i := range expenses {
		resp.Expenses[i] = expenseFromService(&expenses[i])
	}

	return &ListExpensesOutput{Body: resp}, nil
}
