package comment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"billsplit/internal/comment"
	"billsplit/internal/domain"
)

func sampleBill() *domain.Bill {
	return &domain.Bill{
		Month:          "11",
		Year:           "2024",
		TotalDue:       125,
		Plan:           90,
		Equipment:      20,
		OneTimeCharges: 15,
		LineCharges: []domain.LineCharge{
			{Phone: "555-000-0001", Owner: "Alice", LineAmount: 30, EquipmentAmount: 20},
			{Phone: "555-000-0002", Owner: "Bob", LineAmount: 30, OneTimeAmount: 15},
			{Phone: "555-000-0003", Owner: "Carol", LineAmount: 30},
		},
	}
}

var sampleMapping = domain.OwnerMapping{"Alice": 1, "Bob": 2, "Carol": 3}

func TestFormat_Snapshot(t *testing.T) {
	want := `Itemized breakdown:

Alice (555-000-0001):
  Line charge: $30.00
  Equipment: $20.00
  Subtotal: $50.00

Bob (555-000-0002):
  Line charge: $30.00
  One-time charges: $15.00
  Subtotal: $45.00

Carol (555-000-0003):
  Line charge: $30.00
  Subtotal: $30.00

Bill summary:
  Plan: $90.00
  Equipment: $20.00
  One-time charges: $15.00
  Total: $125.00
`

	assert.Equal(t, want, comment.Format(sampleBill(), sampleMapping))
}

func TestFormat_Pure(t *testing.T) {
	first := comment.Format(sampleBill(), sampleMapping)
	second := comment.Format(sampleBill(), sampleMapping)
	assert.Equal(t, first, second)
}

func TestFormat_ZeroAmountsSuppressed(t *testing.T) {
	bill := sampleBill()
	out := comment.Format(bill, sampleMapping)

	// Carol's block has neither equipment nor one-time lines.
	carol := out[strings.Index(out, "Carol"):]
	carol = carol[:strings.Index(carol, "\n\n")]
	assert.NotContains(t, carol, "Equipment")
	assert.NotContains(t, carol, "One-time")
	assert.Contains(t, carol, "Line charge: $30.00")
	assert.Contains(t, carol, "Subtotal: $30.00")
}

func TestFormat_ZeroOneTimeSummarySuppressed(t *testing.T) {
	bill := sampleBill()
	bill.OneTimeCharges = 0
	bill.LineCharges[1].OneTimeAmount = 0

	out := comment.Format(bill, sampleMapping)
	assert.NotContains(t, out, "One-time")
	assert.Contains(t, out, "Equipment: $20.00")
}

func TestFormat_UnmappedOwnerMarked(t *testing.T) {
	mapping := domain.OwnerMapping{"Alice": 1, "Bob": 2}
	out := comment.Format(sampleBill(), mapping)

	assert.Contains(t, out, "Carol (555-000-0003) [not included in split]:")
	assert.Contains(t, out, "Alice (555-000-0001):")
}
