package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	storeexpense "github.com/ledger-works/expense-server/internal/storage/expense"
)

// CategoriesResponseBody is the response body for the category list.
type CategoriesResponseBody struct {
	Categories []string `json:"categories" doc:"Valid expense categories"`
}

// CategoriesOutput is the Huma output for the category list.
type CategoriesOutput struct {
	Body CategoriesResponseBody
}

// CategoriesHandler handles GET /v1/expenses/categories.
type CategoriesHandler struct{}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler() *CategoriesHandler {
	return &CategoriesHandler{}
}

// Register registers the categories endpoint with the Huma API.
func (h *CategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/expenses/categories",
		Summary:     "List categories",
		Description: "Returns the fixed set of expense categories.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *CategoriesHandler) handle(_ context.Context, _ *struct{}) (*CategoriesOutput, error) {
	categories := make([]string, len(storeexpense.AllCategories))
	for i, category := range storeexpense.AllCategories {
		categories[i] = string(category)
	}

	return &CategoriesOutput{Body: CategoriesResponseBody{Categories: categories}}, nil
}
