package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/ledger-works/expense-server/internal/money"
	"github.com/ledger-works/expense-server/internal/operator/actions"
	"github.com/ledger-works/expense-server/internal/storage"
	"github.com/ledger-works/expense-server/internal/storage/expense"
)

// ErrStorageUnavailable marks a transient storage failure. Nothing was
// committed; the client may retry with the same idempotency key without risk
// of a double write.
var ErrStorageUnavailable = errors.New("storage unavailable")

// writeProcessor runs an action inside a single storage transaction.
type writeProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// ExpenseService handles expense business logic, including the idempotency
// guarantee on creates: one persisted expense per key, replays return the
// original record.
type ExpenseService struct {
	storage      *storage.Storage
	operator     writeProcessor
	keyRetention time.Duration
	logger       *logrus.Logger
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store *storage.Storage, op writeProcessor, keyRetention time.Duration, logger *logrus.Logger) *ExpenseService {
	return &ExpenseService{
		storage:      store,
		operator:     op,
		keyRetention: keyRetention,
		logger:       logger,
	}
}

// CreateExpense creates an expense at most once per idempotency key.
//
// A key that was already committed returns the original expense with no new
// write and no re-validation. An unseen key converts the amount to minor
// units and persists the expense together with its key record in one
// transaction. Two concurrent requests on the same key are arbitrated by the
// key's uniqueness constraint at commit time: the loser re-reads and returns
// the winner's expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, create ExpenseCreate, idempotencyKey string) (*Expense, error) {
	replaceStaleKey := false

	record, err := s.storage.IdempotencyKeys.FindByKey(ctx, idempotencyKey)
	if err != nil {
		return nil, transient("find idempotency key", err)
	}

	if record != nil {
		existing, err := s.storage.Expenses.FindByID(ctx, record.ExpenseID)
		if err != nil {
			return nil, transient("find expense for key", err)
		}
		if existing != nil {
			return expenseFromStorage(existing), nil
		}

		// The key points at an expense that no longer exists. Self-heal by
		// writing a replacement expense and re-pointing the key, in the same
		// transaction as the new write.
		s.logger.WithFields(logrus.Fields{
			"idempotencyKey": idempotencyKey,
			"expenseID":      record.ExpenseID,
		}).Warn("ExpenseService.CreateExpense.danglingIdempotencyKey")
		replaceStaleKey = true
	}

	amountMinorUnits, err := money.ToMinorUnits(create.Amount)
	if err != nil {
		// Contract violation from upstream validation. Nothing was persisted.
		return nil, err
	}

	action := &actions.CreateExpense{
		ID:               uuid.Must(uuid.NewV4()),
		Key:              idempotencyKey,
		AmountMinorUnits: amountMinorUnits,
		Category:         create.Category,
		Description:      create.Description,
		Date:             create.Date,
		ReplaceStaleKey:  replaceStaleKey,
	}

	err = s.operator.Process(ctx, action)
	if storage.IsUniqueViolation(err) {
		// Lost the commit race; another request with this key already wrote.
		return s.findRaceWinner(ctx, idempotencyKey)
	}
	if err != nil {
		return nil, transient("commit expense", err)
	}

	return expenseFromStorage(action.Result), nil
}

// findRaceWinner re-reads the expense committed by the request that won the
// uniqueness race on the key.
func (s *ExpenseService) findRaceWinner(ctx context.Context, idempotencyKey string) (*Expense, error) {
	record, err := s.storage.IdempotencyKeys.FindByKey(ctx, idempotencyKey)
	if err != nil {
		return nil, transient("find winning key", err)
	}
	if record == nil {
		// The winner's record vanished between its commit and our read.
		// Surface as retryable; retrying the same key is safe.
		return nil, transient("find winning key", errors.New("record not found after unique violation"))
	}

	existing, err := s.storage.Expenses.FindByID(ctx, record.ExpenseID)
	if err != nil {
		return nil, transient("find winning expense", err)
	}
	if existing == nil {
		return nil, transient("find winning expense", errors.New("expense not found after unique violation"))
	}

	return expenseFromStorage(existing), nil
}

// ListExpenses returns expenses matching the filter, ordered by date.
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]Expense, error) {
	storageFilter := &expense.ExpenseFilter{
		Category:      filter.Category,
		SortAscending: filter.SortAscending,
	}

	rows, err := s.storage.Expenses.List(ctx, storageFilter)
	if err != nil {
		return nil, err
	}

	convertedExpenses := make([]Expense, len(rows))
	for i, row := range rows {
		convertedExpenses[i] = *expenseFromStorage(row)
	}

	return convertedExpenses, nil
}

// SummarizeByCategory returns per-category totals, largest first.
func (s *ExpenseService) SummarizeByCategory(ctx context.Context) ([]CategorySummary, error) {
	rows, err := s.storage.Expenses.SummarizeByCategory(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]CategorySummary, len(rows))
	for i, row := range rows {
		summaries[i] = CategorySummary{
			Category:        row.Category,
			TotalMinorUnits: row.TotalMinorUnits,
		}
	}

	return summaries, nil
}

// CleanupExpiredKeys deletes idempotency records older than the retention
// window and returns how many were removed. A key removed here makes a very
// late retry create a new expense; that trade-off bounds table growth.
func (s *ExpenseService) CleanupExpiredKeys(ctx context.Context) (int64, error) {
	action := &actions.CleanupKeys{
		Cutoff: time.Now().UTC().Add(-s.keyRetention),
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return 0, transient("cleanup expired keys", err)
	}

	return action.Removed, nil
}

func transient(stage string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, stage, err)
}
