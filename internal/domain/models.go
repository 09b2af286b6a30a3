package domain

// LineCharge is one phone line's portion of a bill: its equal share of the
// base plan plus any device financing and ad-hoc charges billed to that line.
type LineCharge struct {
	Phone           string  `json:"phone" validate:"required"`
	Owner           string  `json:"owner" validate:"required"`
	LineAmount      float64 `json:"line_amount" validate:"gte=0"`
	EquipmentAmount float64 `json:"equipment_amount" validate:"gte=0"`
	OneTimeAmount   float64 `json:"one_time_amount" validate:"gte=0"`
}

// Subtotal returns the full amount attributable to this line.
func (lc *LineCharge) Subtotal() float64 {
	return lc.LineAmount + lc.EquipmentAmount + lc.OneTimeAmount
}

// Bill is one billing-cycle statement. Month and Year come from the bill
// issue date, never from the service period or the due date. A Bill is
// constructed once by the interpreter and consumed read-only downstream.
type Bill struct {
	Month          string       `json:"month" validate:"required"`
	Year           string       `json:"year" validate:"required"`
	TotalDue       float64      `json:"total_due" validate:"gte=0"`
	Plan           float64      `json:"plan" validate:"gte=0"`
	Equipment      float64      `json:"equipment" validate:"gte=0"`
	OneTimeCharges float64      `json:"one_time_charges" validate:"gte=0"`
	LineCharges    []LineCharge `json:"line_charges" validate:"required,min=1,dive"`
}

// OwnerMapping maps an owner display name to a ledger account ID.
// It is supplied by configuration and never mutated by the pipeline.
type OwnerMapping map[string]int64

// Shares maps a ledger account ID to the amount that account owes.
type Shares map[int64]float64

// Total returns the sum of all owed amounts.
func (s Shares) Total() float64 {
	var total float64
	for _, amount := range s {
		total += amount
	}
	return total
}
