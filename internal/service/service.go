package service

import (
	"github.com/sirupsen/logrus"

	"github.com/ledger-works/expense-server/internal/config"
	"github.com/ledger-works/expense-server/internal/operator"
	"github.com/ledger-works/expense-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Expense *ExpenseService
}

// NewService creates a new Service with the given storage and write operator.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, env *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		Expense: NewExpenseService(store, op, env.KeyRetention, logger),
	}
}
