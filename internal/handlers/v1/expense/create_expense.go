package expense

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/ledger-works/expense-server/internal/money"
	"github.com/ledger-works/expense-server/internal/service"
	storeexpense "github.com/ledger-works/expense-server/internal/storage/expense"
)

// CreateExpenseBody is the request body for creating an expense.
type CreateExpenseBody struct {
	Amount      float64 `json:"amount" required:"true" exclusiveMinimum:"0" maximum:"100000000" doc:"Positive decimal amount"`
	Category    string  `json:"category" required:"true" enum:"Food,Transport,Shopping,Bills,Entertainment,Health,Other" doc:"Expense category"`
	Description string  `json:"description" required:"true" minLength:"1" maxLength:"500" doc:"Description of the expense"`
	Date        string  `json:"date" required:"true" format:"date-time" doc:"RFC3339 expense date"`
}

// CreateExpenseInput is the Huma input for creating an expense.
type CreateExpenseInput struct {
	IdempotencyKey string `header:"X-Idempotency-Key" doc:"Client-chosen key deduplicating retried submissions. Generated server-side when absent, which forfeits retry dedup for this request."`
	Body           CreateExpenseBody
}

// CreateExpenseOutput is the Huma output for creating an expense.
type CreateExpenseOutput struct {
	Body Expense
}

// expenseCreator is the interface for idempotent expense creation.
type expenseCreator interface {
	CreateExpense(ctx context.Context, create service.ExpenseCreate, idempotencyKey string) (*service.Expense, error)
}

// CreateExpenseHandler handles POST /v1/expenses.
type CreateExpenseHandler struct {
	ExpenseService expenseCreator

	// RequireIdempotencyKey rejects requests without the header instead of
	// generating a key server-side.
	RequireIdempotencyKey bool
}

// NewCreateExpenseHandler creates a new CreateExpenseHandler.
func NewCreateExpenseHandler(svc expenseCreator, requireKey bool) *CreateExpenseHandler {
	return &CreateExpenseHandler{ExpenseService: svc, RequireIdempotencyKey: requireKey}
}

// Register registers the create expense endpoint with the Huma API.
func (h *CreateExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-expense",
		Method:        http.MethodPost,
		Path:          "/v1/expenses",
		Summary:       "Create expense",
		Description:   "Creates a new expense. Repeated submissions with the same X-Idempotency-Key return the originally created expense.",
		Tags:          []string{"Expenses"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateExpenseInput converts the validated API input into the service
// payload. Huma's schema validation has already enforced bounds, enum
// membership, and the date format.
func parseCreateExpenseInput(input *CreateExpenseInput) (service.ExpenseCreate, error) {
	date, err := time.Parse(time.RFC3339, input.Body.Date)
	if err != nil {
		return service.ExpenseCreate{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	return service.ExpenseCreate{
		Amount:      input.Body.Amount,
		Category:    storeexpense.Category(input.Body.Category),
		Description: input.Body.Description,
		Date:        date,
	}, nil
}

func (h *CreateExpenseHandler) handle(ctx context.Context, input *CreateExpenseInput) (*CreateExpenseOutput, error) {
	idempotencyKey := input.IdempotencyKey
	if idempotencyKey == "" {
		if h.RequireIdempotencyKey {
			return nil, huma.NewError(http.StatusBadRequest, "missing X-Idempotency-Key header")
		}
		idempotencyKey = uuid.Must(uuid.NewV4()).String()
	}

	payload, err := parseCreateExpenseInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.ExpenseService.CreateExpense(ctx, payload, idempotencyKey)
	if errors.Is(err, money.ErrInvalidAmount) {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	if errors.Is(err, service.ErrStorageUnavailable) {
		// Retrying with the same key cannot double-apply.
		return nil, huma.NewError(http.StatusServiceUnavailable, "storage unavailable, retry with the same idempotency key", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create expense", err)
	}

	return &CreateExpenseOutput{Body: expenseFromService(created)}, nil
}
