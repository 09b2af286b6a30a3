package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateBill checks a decoded bill against the schema: required fields,
// non-negative amounts, at least one line charge, and phone uniqueness
// within the line-charge set.
func ValidateBill(b *Bill) error {
	if err := validate.Struct(b); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(b.LineCharges))
	for _, lc := range b.LineCharges {
		if _, ok := seen[lc.Phone]; ok {
			return fmt.Errorf("duplicate phone %q in line charges", lc.Phone)
		}
		seen[lc.Phone] = struct{}{}
	}
	return nil
}
