package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billsplit/internal/port"
)

// MockLedger is a mock implementation of port.Ledger.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListGroupExpenses(ctx context.Context, groupID int64, limit int) ([]port.Expense, error) {
	args := m.Called(ctx, groupID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.Expense), args.Error(1)
}

func (m *MockLedger) CreateExpense(ctx context.Context, input port.CreateExpenseInput) (*port.Expense, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Expense), args.Error(1)
}

func (m *MockLedger) CreateComment(ctx context.Context, expenseID int64, content string) error {
	args := m.Called(ctx, expenseID, content)
	return args.Error(0)
}

func (m *MockLedger) GetGroupMembers(ctx context.Context, groupID int64) ([]port.Member, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.Member), args.Error(1)
}
