// Package comment renders the itemized breakdown attached to a submitted
// expense. Output is deterministic for identical inputs so it can be
// snapshot-tested.
package comment

import (
	"fmt"
	"strings"

	"billsplit/internal/domain"
)

// Format produces one block per line charge followed by a bill-level
// summary. Equipment and one-time lines are shown only when non-zero; the
// line charge and subtotal always appear. Lines whose owner is missing from
// the mapping are marked as excluded from the split.
func Format(bill *domain.Bill, mapping domain.OwnerMapping) string {
	var b strings.Builder

	b.WriteString("Itemized breakdown:\n")
	for i := range bill.LineCharges {
		lc := &bill.LineCharges[i]
		b.WriteString("\n")
		if _, ok := mapping[lc.Owner]; ok {
			fmt.Fprintf(&b, "%s (%s):\n", lc.Owner, lc.Phone)
		} else {
			fmt.Fprintf(&b, "%s (%s) [not included in split]:\n", lc.Owner, lc.Phone)
		}
		fmt.Fprintf(&b, "  Line charge: $%.2f\n", lc.LineAmount)
		if lc.EquipmentAmount != 0 {
			fmt.Fprintf(&b, "  Equipment: $%.2f\n", lc.EquipmentAmount)
		}
		if lc.OneTimeAmount != 0 {
			fmt.Fprintf(&b, "  One-time charges: $%.2f\n", lc.OneTimeAmount)
		}
		fmt.Fprintf(&b, "  Subtotal: $%.2f\n", lc.Subtotal())
	}

	b.WriteString("\nBill summary:\n")
	fmt.Fprintf(&b, "  Plan: $%.2f\n", bill.Plan)
	fmt.Fprintf(&b, "  Equipment: $%.2f\n", bill.Equipment)
	if bill.OneTimeCharges != 0 {
		fmt.Fprintf(&b, "  One-time charges: $%.2f\n", bill.OneTimeCharges)
	}
	fmt.Fprintf(&b, "  Total: $%.2f\n", bill.TotalDue)

	return b.String()
}
