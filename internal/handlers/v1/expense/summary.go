package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledger-works/expense-server/internal/money"
	"github.com/ledger-works/expense-server/internal/service"
)

// CategorySummary is one row of the per-category totals response.
type CategorySummary struct {
	Category        string `json:"category" doc:"Expense category"`
	Total           string `json:"total" doc:"Decimal total for the category"`
	TotalMinorUnits int64  `json:"totalMinorUnits" doc:"Exact total in integer minor units"`
}

// SummaryResponseBody is the response body for the expense summary.
type SummaryResponseBody struct {
	Summary []CategorySummary `json:"summary" doc:"Per-category totals, largest first"`
}

// SummaryOutput is the Huma output for the expense summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// expenseSummarizer is the interface for summarizing expenses by category.
type expenseSummarizer interface {
	SummarizeByCategory(ctx context.Context) ([]service.CategorySummary, error)
}

// SummaryHandler handles GET /v1/expenses/summary.
type SummaryHandler struct {
	ExpenseService expenseSummarizer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc expenseSummarizer) *SummaryHandler {
	return &SummaryHandler{ExpenseService: svc}
}

// Register registers the summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "expense-summary",
		Method:      http.MethodGet,
		Path:        "/v1/expenses/summary",
		Summary:     "Summarize expenses",
		Description: "Returns the total spent per category, largest first.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	summaries, err := h.ExpenseService.SummarizeByCategory(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to summarize expenses", err)
	}

	resp := SummaryResponseBody{
		Summary: make([]CategorySummary, len(summaries)),
	}
	for i, row := range summaries {
		resp.Summary[i] = CategorySummary{
			Category:        string(row.Category),
			Total:           money.Display(row.TotalMinorUnits),
			TotalMinorUnits: row.TotalMinorUnits,
		}
	}

	return &SummaryOutput{Body: resp}, nil
}
