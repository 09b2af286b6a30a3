package port

import (
	"context"

	"billsplit/internal/domain"
)

// ParseInput carries the data needed for bill interpretation.
type ParseInput struct {
	Text       string // raw text extracted from the bill document
	OwnerTable string // phone-number to owner-name reference table
}

// ParseOutput contains the validated bill plus audit metadata.
type ParseOutput struct {
	Bill       *domain.Bill
	ModelUsed  string
	PromptUsed string
}

// BillParser abstracts LLM-based bill interpretation.
type BillParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
