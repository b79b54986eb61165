package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledger-works/expense-server/internal/money"
	"github.com/ledger-works/expense-server/internal/service"
	storeexpense "github.com/ledger-works/expense-server/internal/storage/expense"
)

// mockExpenseService is a mock for expenseCreator.
type mockExpenseService struct {
	mock.Mock
}

func (m *mockExpenseService) CreateExpense(ctx context.Context, create service.ExpenseCreate, idempotencyKey string) (*service.Expense, error) {
	args := m.Called(ctx, create, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Expense), args.Error(1)
}

// newCreateTestAPI registers the handler against a humatest API and returns it.
func newCreateTestAPI(t *testing.T, svc expenseCreator, requireKey bool) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateExpenseHandler(svc, requireKey).Register(api)
	return api
}

func serviceExpense(id uuid.UUID, minorUnits int64) *service.Expense {
	return &service.Expense{
		ID:               id,
		AmountMinorUnits: minorUnits,
		Category:         storeexpense.CategoryFood,
		Description:      "Lunch",
		Date:             time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC),
	}
}

func validBody() CreateExpenseBody {
	return CreateExpenseBody{
		Amount:      150.50,
		Category:    "Food",
		Description: "Lunch",
		Date:        "2025-06-01T12:00:00Z",
	}
}

func TestHTTP_CreateExpense_Success(t *testing.T) {
	expenseID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockExpenseService)
	mockSvc.On("CreateExpense", mock.Anything, mock.MatchedBy(func(create service.ExpenseCreate) bool {
		return create.Amount == 150.50 &&
			create.Category == storeexpense.CategoryFood &&
			create.Description == "Lunch"
	}), "abc").Return(serviceExpense(expenseID, 15050), nil)

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses",
		"X-Idempotency-Key: abc",
		validBody(),
	)

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Expense
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, expenseID.String(), body.ID)
	assert.Equal(t, "150.50", body.Amount)
	assert.Equal(t, int64(15050), body.AmountMinorUnits)
	assert.Equal(t, "Food", body.Category)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_ReplayReturnsSameExpense(t *testing.T) {
	expenseID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockExpenseService)
	mockSvc.On("CreateExpense", mock.Anything, mock.Anything, "abc").
		Return(serviceExpense(expenseID, 15050), nil).Twice()

	api := newCreateTestAPI(t, mockSvc, false)

	first := api.Post("/v1/expenses", "X-Idempotency-Key: abc", validBody())
	second := api.Post("/v1/expenses", "X-Idempotency-Key: abc", validBody())

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)

	var firstBody, secondBody Expense
	assert.NoError(t, json.NewDecoder(first.Body).Decode(&firstBody))
	assert.NoError(t, json.NewDecoder(second.Body).Decode(&secondBody))
	assert.Equal(t, firstBody.ID, secondBody.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_GeneratesKeyWhenHeaderAbsent(t *testing.T) {
	mockSvc := new(mockExpenseService)
	mockSvc.On("CreateExpense", mock.Anything, mock.Anything, mock.MatchedBy(func(key string) bool {
		_, err := uuid.FromString(key)
		return err == nil
	})).Return(serviceExpense(uuid.Must(uuid.NewV4()), 15050), nil)

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses", validBody())

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_RequiredKeyMissing(t *testing.T) {
	mockSvc := new(mockExpenseService)

	resp := newCreateTestAPI(t, mockSvc, true).Post("/v1/expenses", validBody())

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateExpense")
}

func TestHTTP_CreateExpense_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockExpenseService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses", map[string]any{
		"amount": 10.0,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateExpense")
}

func TestHTTP_CreateExpense_NonPositiveAmount(t *testing.T) {
	mockSvc := new(mockExpenseService)

	body := validBody()
	body.Amount = 0

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses", body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateExpense")
}

func TestHTTP_CreateExpense_AmountOverMaximum(t *testing.T) {
	mockSvc := new(mockExpenseService)

	body := validBody()
	body.Amount = 100000001

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses", body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateExpense")
}

func TestHTTP_CreateExpense_UnknownCategory(t *testing.T) {
	mockSvc := new(mockExpenseService)

	body := validBody()
	body.Category = "Gambling"

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses", body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateExpense")
}

func TestHTTP_CreateExpense_InvalidDate(t *testing.T) {
	mockSvc := new(mockExpenseService)

	body := validBody()
	body.Date = "not-a-date"

	// Huma's format:"date-time" schema validation rejects this before the handler runs.
	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses", body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateExpense")
}

func TestHTTP_CreateExpense_InvalidAmountFromService(t *testing.T) {
	mockSvc := new(mockExpenseService)
	mockSvc.On("CreateExpense", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, money.ErrInvalidAmount)

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses",
		"X-Idempotency-Key: abc", validBody())

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_StorageUnavailable(t *testing.T) {
	mockSvc := new(mockExpenseService)
	mockSvc.On("CreateExpense", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrStorageUnavailable)

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses",
		"X-Idempotency-Key: abc", validBody())

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_UnexpectedServiceError(t *testing.T) {
	mockSvc := new(mockExpenseService)
	mockSvc.On("CreateExpense", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("boom"))

	resp := newCreateTestAPI(t, mockSvc, false).Post("/v1/expenses",
		"X-Idempotency-Key: abc", validBody())

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
