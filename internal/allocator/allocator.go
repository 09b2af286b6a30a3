package allocator

import "billsplit/internal/domain"

// Allocate computes each account's share of the bill: the sum of line,
// equipment and one-time amounts across that owner's lines. Lines whose
// owner has no mapping entry are skipped; their owner names are returned in
// line order so the caller can report each dropped line exactly once.
// Output depends only on the inputs.
func Allocate(bill *domain.Bill, mapping domain.OwnerMapping) (domain.Shares, []string) {
	shares := make(domain.Shares)
	var skipped []string

	for i := range bill.LineCharges {
		lc := &bill.LineCharges[i]
		accountID, ok := mapping[lc.Owner]
		if !ok {
			skipped = append(skipped, lc.Owner)
			continue
		}
		shares[accountID] += lc.Subtotal()
	}

	return shares, skipped
}
