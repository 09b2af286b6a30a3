package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"billsplit/internal/domain"
	"billsplit/internal/port"
)

// Submitter creates split expenses with an itemized follow-up comment.
type Submitter struct {
	ledger port.Ledger
}

// NewSubmitter creates a Submitter over a ledger client.
func NewSubmitter(l port.Ledger) *Submitter {
	return &Submitter{ledger: l}
}

// BuildShares converts an allocation into per-account paid/owed entries and
// the expense cost. Amounts settle in whole cents: each owed share rounds to
// the nearest cent independently and the cost is the sum of the rounded
// shares, so cost and owed always reconcile to the penny regardless of how
// the equal split divided. The payer's entry records paid = cost and
// owed = its own share; every other account records paid = 0 and owed = its
// share. A payer with no line of its own still fronts the bill, with
// owed = 0. Entries are ordered by account ID so output is reproducible.
func BuildShares(shares domain.Shares, payerID int64) ([]port.ExpenseShare, string) {
	ids := make([]int64, 0, len(shares))
	for id := range shares {
		ids = append(ids, id)
	}
	if _, ok := shares[payerID]; !ok {
		ids = append(ids, payerID)
	}
	slices.Sort(ids)

	owedCents := make(map[int64]int64, len(ids))
	var totalCents int64
	for _, id := range ids {
		owedCents[id] = toCents(shares[id])
		totalCents += owedCents[id]
	}

	out := make([]port.ExpenseShare, 0, len(ids))
	for _, id := range ids {
		entry := port.ExpenseShare{
			AccountID: id,
			Paid:      "0.00",
			Owed:      centsToMoney(owedCents[id]),
		}
		if id == payerID {
			entry.Paid = centsToMoney(totalCents)
		}
		out = append(out, entry)
	}
	return out, centsToMoney(totalCents)
}

// Submit creates the expense and attaches the breakdown comment. A comment
// failure is logged as a warning and never undoes the expense: the expense
// itself is the durable side effect.
func (s *Submitter) Submit(ctx context.Context, groupID, payerID int64, shares domain.Shares,
	description, details, breakdown string) (*port.Expense, error) {

	entries, cost := BuildShares(shares, payerID)
	expense, err := s.ledger.CreateExpense(ctx, port.CreateExpenseInput{
		GroupID:     groupID,
		Cost:        cost,
		Description: description,
		Details:     details,
		Shares:      entries,
	})
	if err != nil {
		return nil, err
	}

	if err := s.ledger.CreateComment(ctx, expense.ID, breakdown); err != nil {
		slog.Warn("could not attach breakdown comment, expense was created",
			"expense_id", expense.ID, "error", err)
	}

	return expense, nil
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func centsToMoney(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
