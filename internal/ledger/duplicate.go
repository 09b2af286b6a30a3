// Package ledger holds the pipeline-side logic over the ledger service:
// duplicate detection and expense submission.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"billsplit/internal/port"
)

// recentExpenseWindow bounds the duplicate scan to the most recent expenses
// the service returns for the group.
const recentExpenseWindow = 100

// Guard checks whether an equivalent expense already exists in a group.
// This is a heuristic substring match, not a unique-key lookup: it is
// intentionally permissive so that a resubmission after a partial prior
// failure is still caught.
type Guard struct {
	ledger port.Ledger
}

// NewGuard creates a Guard over a ledger client.
func NewGuard(l port.Ledger) *Guard {
	return &Guard{ledger: l}
}

// Check scans the group's recent expenses for one whose description
// contains both marker and the month/year token. The first match in
// service order wins. A nil expense means no duplicate was found.
func (g *Guard) Check(ctx context.Context, groupID int64, marker, month, year string) (*port.Expense, error) {
	expenses, err := g.ledger.ListGroupExpenses(ctx, groupID, recentExpenseWindow)
	if err != nil {
		return nil, fmt.Errorf("listing group expenses: %w", err)
	}

	token := month + "/" + year
	for i := range expenses {
		desc := expenses[i].Description
		if strings.Contains(desc, marker) && strings.Contains(desc, token) {
			return &expenses[i], nil
		}
	}
	return nil, nil
}
