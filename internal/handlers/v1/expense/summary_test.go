package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledger-works/expense-server/internal/service"
	storeexpense "github.com/ledger-works/expense-server/internal/storage/expense"
)

// mockExpenseSummarizer is a mock for expenseSummarizer.
type mockExpenseSummarizer struct {
	mock.Mock
}

func (m *mockExpenseSummarizer) SummarizeByCategory(ctx context.Context) ([]service.CategorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CategorySummary), args.Error(1)
}

func newSummaryTestAPI(t *testing.T, svc expenseSummarizer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSummaryHandler(svc).Register(api)
	return api
}

func TestHTTP_Summary_Success(t *testing.T) {
	mockSvc := new(mockExpenseSummarizer)
	mockSvc.On("SummarizeByCategory", mock.Anything).Return([]service.CategorySummary{
		{Category: storeexpense.CategoryFood, TotalMinorUnits: 16075},
		{Category: storeexpense.CategoryBills, TotalMinorUnits: 4000},
	}, nil)

	resp := newSummaryTestAPI(t, mockSvc).Get("/v1/expenses/summary")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummaryResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Summary, 2)
	assert.Equal(t, "Food", body.Summary[0].Category)
	assert.Equal(t, "160.75", body.Summary[0].Total)
	assert.Equal(t, int64(16075), body.Summary[0].TotalMinorUnits)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Summary_ServiceError(t *testing.T) {
	mockSvc := new(mockExpenseSummarizer)
	mockSvc.On("SummarizeByCategory", mock.Anything).
		Return(nil, errors.New("database unavailable"))

	resp := newSummaryTestAPI(t, mockSvc).Get("/v1/expenses/summary")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Categories(t *testing.T) {
	_, api := humatest.New(t)
	NewCategoriesHandler().Register(api)

	resp := api.Get("/v1/expenses/categories")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body CategoriesResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health", "Other"}, body.Categories)
}
