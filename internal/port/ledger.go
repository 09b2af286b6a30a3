package port

import "context"

// Expense is the subset of a ledger expense the pipeline consumes.
type Expense struct {
	ID          int64
	Description string
	Cost        string
}

// ExpenseShare is one account's entry in a split expense. Paid and Owed are
// currency strings formatted to two decimal places.
type ExpenseShare struct {
	AccountID int64
	Paid      string
	Owed      string
}

// CreateExpenseInput describes a split expense to be created in a group.
type CreateExpenseInput struct {
	GroupID     int64
	Cost        string
	Description string
	Details     string
	Shares      []ExpenseShare
}

// Member is a ledger group member.
type Member struct {
	ID        int64
	FirstName string
}

// Ledger exposes the four ledger-service operations the pipeline consumes.
// Account and session lifecycle belong to the implementation.
type Ledger interface {
	ListGroupExpenses(ctx context.Context, groupID int64, limit int) ([]Expense, error)
	CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error)
	CreateComment(ctx context.Context, expenseID int64, content string) error
	GetGroupMembers(ctx context.Context, groupID int64) ([]Member, error)
}
