package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billsplit/internal/domain"
	"billsplit/internal/ledger"
	"billsplit/internal/port"
	"billsplit/mocks"
)

func TestBuildShares_PayerInvariant(t *testing.T) {
	shares := domain.Shares{1: 50, 2: 45, 3: 30}

	entries, cost := ledger.BuildShares(shares, 1)

	require.Len(t, entries, 3)
	assert.Equal(t, "125.00", cost)
	assert.Equal(t, port.ExpenseShare{AccountID: 1, Paid: "125.00", Owed: "50.00"}, entries[0])
	assert.Equal(t, port.ExpenseShare{AccountID: 2, Paid: "0.00", Owed: "45.00"}, entries[1])
	assert.Equal(t, port.ExpenseShare{AccountID: 3, Paid: "0.00", Owed: "30.00"}, entries[2])
}

func TestBuildShares_OrderedByAccountID(t *testing.T) {
	shares := domain.Shares{9: 10, 2: 20, 5: 30}

	entries, _ := ledger.BuildShares(shares, 5)

	ids := []int64{entries[0].AccountID, entries[1].AccountID, entries[2].AccountID}
	assert.Equal(t, []int64{2, 5, 9}, ids)
}

func TestBuildShares_PayerWithoutOwnLine(t *testing.T) {
	shares := domain.Shares{2: 45, 3: 30}

	entries, cost := ledger.BuildShares(shares, 1)

	require.Len(t, entries, 3)
	assert.Equal(t, "75.00", cost)
	assert.Equal(t, port.ExpenseShare{AccountID: 1, Paid: "75.00", Owed: "0.00"}, entries[0])
}

func TestBuildShares_NonDivisiblePlanReconciles(t *testing.T) {
	// A 100.00 plan split three ways leaves repeating thirds. The service
	// rejects an expense whose cost differs from the sum of the owed shares,
	// so the cost must be the sum of the rounded shares, not the rounded sum.
	third := 100.0 / 3
	shares := domain.Shares{1: third, 2: third, 3: third}

	entries, cost := ledger.BuildShares(shares, 1)

	require.Len(t, entries, 3)
	assert.Equal(t, "99.99", cost)
	for _, e := range entries {
		assert.Equal(t, "33.33", e.Owed)
	}
	assert.Equal(t, "99.99", entries[0].Paid)
}

func TestSubmitter_Submit_Success(t *testing.T) {
	shares := domain.Shares{1: 50, 2: 45, 3: 30}

	l := new(mocks.MockLedger)
	l.On("CreateExpense", mock.Anything, mock.MatchedBy(func(input port.CreateExpenseInput) bool {
		return input.GroupID == 42 &&
			input.Cost == "125.00" &&
			input.Description == "T-Mobile Bill - 11/2024" &&
			len(input.Shares) == 3
	})).Return(&port.Expense{ID: 99, Description: "T-Mobile Bill - 11/2024", Cost: "125.00"}, nil)
	l.On("CreateComment", mock.Anything, int64(99), "breakdown text").Return(nil)

	s := ledger.NewSubmitter(l)
	expense, err := s.Submit(context.Background(), 42, 1, shares,
		"T-Mobile Bill - 11/2024", "Total due: $125.00", "breakdown text")

	require.NoError(t, err)
	assert.Equal(t, int64(99), expense.ID)
	l.AssertExpectations(t)
}

func TestSubmitter_Submit_CommentFailureDoesNotFailRun(t *testing.T) {
	shares := domain.Shares{1: 50}

	l := new(mocks.MockLedger)
	l.On("CreateExpense", mock.Anything, mock.Anything).
		Return(&port.Expense{ID: 99}, nil)
	l.On("CreateComment", mock.Anything, int64(99), mock.Anything).
		Return(errors.New("comment service down"))

	s := ledger.NewSubmitter(l)
	expense, err := s.Submit(context.Background(), 42, 1, shares, "desc", "", "breakdown")

	require.NoError(t, err)
	assert.Equal(t, int64(99), expense.ID)
}

func TestSubmitter_Submit_ExpenseFailure(t *testing.T) {
	shares := domain.Shares{1: 50}

	l := new(mocks.MockLedger)
	l.On("CreateExpense", mock.Anything, mock.Anything).
		Return(nil, domain.ErrSubmission)

	s := ledger.NewSubmitter(l)
	_, err := s.Submit(context.Background(), 42, 1, shares, "desc", "", "breakdown")

	assert.ErrorIs(t, err, domain.ErrSubmission)
	l.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}
