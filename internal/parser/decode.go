package parser

import (
	"encoding/json"
	"strings"

	"billsplit/internal/domain"
)

// DecodeBill turns a raw model response into a validated Bill. It strips an
// optional leading/trailing code fence, parses the JSON, validates it
// against the bill schema, and recomputes the equal-split line amount
// locally. Model arithmetic is never trusted for derivable fields: carrier
// bills report a misleading zero or "Included" plan cost per line while the
// true plan charge is aggregated, so the per-line figure is always plan / N.
func DecodeBill(text string) (*domain.Bill, error) {
	cleaned := stripFences(text)

	var bill domain.Bill
	if err := json.Unmarshal([]byte(cleaned), &bill); err != nil {
		return nil, &MalformedBillError{Err: err, Raw: text}
	}
	if err := domain.ValidateBill(&bill); err != nil {
		return nil, &MalformedBillError{Err: err, Raw: text}
	}

	perLine := bill.Plan / float64(len(bill.LineCharges))
	for i := range bill.LineCharges {
		bill.LineCharges[i].LineAmount = perLine
	}
	return &bill, nil
}

// stripFences removes a single wrapping markdown code fence, with or without
// a json language tag, if present.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
