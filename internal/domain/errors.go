package domain

import "errors"

var (
	ErrExtraction        = errors.New("document could not be read")
	ErrCompletionService = errors.New("completion service call failed")
	ErrNoShares          = errors.New("no line charge matched an owner mapping")
	ErrPayerNotMapped    = errors.New("payer has no owner mapping entry")
	ErrSubmission        = errors.New("ledger rejected the expense")
)
