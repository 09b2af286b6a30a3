// Package service sequences the bill-splitting pipeline: extract text,
// interpret the bill, allocate shares, guard against duplicates, submit the
// expense, attach the breakdown comment. Stages run strictly in order and
// each stage's output is the next stage's sole input.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"billsplit/internal/allocator"
	"billsplit/internal/comment"
	"billsplit/internal/domain"
	"billsplit/internal/ledger"
	"billsplit/internal/port"
)

// Options holds the pre-resolved run configuration the pipeline needs.
type Options struct {
	GroupID             int64
	PayerName           string
	DescriptionTemplate string
	OwnerTable          string // phone-number to owner-name reference table text
	Mappings            domain.OwnerMapping
}

// Result reports what a run produced. Duplicate is non-nil when the run
// short-circuited on an existing expense; Expense is nil for dry runs.
type Result struct {
	Bill        *domain.Bill
	Shares      domain.Shares
	Skipped     []string
	Description string
	Breakdown   string
	Duplicate   *port.Expense
	Expense     *port.Expense
	DryRun      bool
}

// Pipeline runs one bill end to end. It holds no state across runs.
type Pipeline struct {
	extractor port.TextExtractor
	parser    port.BillParser
	guard     *ledger.Guard
	submitter *ledger.Submitter
	ledger    port.Ledger
	opts      Options
}

// New creates a Pipeline from its collaborators and run options.
func New(extractor port.TextExtractor, parser port.BillParser, ledgerClient port.Ledger, opts Options) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		parser:    parser,
		guard:     ledger.NewGuard(ledgerClient),
		submitter: ledger.NewSubmitter(ledgerClient),
		ledger:    ledgerClient,
		opts:      opts,
	}
}

// Run processes one bill document. With dryRun set it performs every
// read-only step, including the duplicate check, but makes no ledger
// mutations.
func (p *Pipeline) Run(ctx context.Context, path string, dryRun bool) (*Result, error) {
	logger := slog.With("run_id", uuid.New().String(), "bill", path)

	logger.Info("extracting text")
	text, err := p.extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	logger.Info("extracted text", "chars", len(text))

	logger.Info("interpreting bill")
	out, err := p.parser.Parse(ctx, port.ParseInput{Text: text, OwnerTable: p.opts.OwnerTable})
	if err != nil {
		return nil, err
	}
	bill := out.Bill
	logger.Info("interpreted bill",
		"month", bill.Month, "year", bill.Year, "total_due", bill.TotalDue,
		"lines", len(bill.LineCharges), "model", out.ModelUsed)

	shares, skipped := allocator.Allocate(bill, p.opts.Mappings)
	for _, owner := range skipped {
		logger.Warn("owner has no mapping entry, dropping line", "owner", owner)
	}
	if len(shares) == 0 {
		return nil, domain.ErrNoShares
	}

	payerID, ok := p.opts.Mappings[p.opts.PayerName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrPayerNotMapped, p.opts.PayerName)
	}

	if err := p.checkMembership(ctx, logger, shares); err != nil {
		return nil, err
	}

	result := &Result{
		Bill:        bill,
		Shares:      shares,
		Skipped:     skipped,
		Description: renderTemplate(p.opts.DescriptionTemplate, bill.Month, bill.Year),
		Breakdown:   comment.Format(bill, p.opts.Mappings),
		DryRun:      dryRun,
	}

	logger.Info("checking for duplicate expense")
	dup, err := p.guard.Check(ctx, p.opts.GroupID, markerFromTemplate(p.opts.DescriptionTemplate), bill.Month, bill.Year)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		logger.Info("duplicate expense found, skipping submission",
			"expense_id", dup.ID, "description", dup.Description)
		result.Duplicate = dup
		return result, nil
	}

	if dryRun {
		logger.Info("dry run, skipping submission", "total", shares.Total())
		return result, nil
	}

	logger.Info("creating expense", "description", result.Description, "total", shares.Total())
	details := fmt.Sprintf("Total due: $%.2f", bill.TotalDue)
	expense, err := p.submitter.Submit(ctx, p.opts.GroupID, payerID, shares,
		result.Description, details, result.Breakdown)
	if err != nil {
		return nil, err
	}
	logger.Info("expense created", "expense_id", expense.ID, "cost", expense.Cost)

	result.Expense = expense
	return result, nil
}

// checkMembership warns about share accounts that are not members of the
// target group. The service will reject such an expense; the early warning
// makes a stale mapping diagnosable.
func (p *Pipeline) checkMembership(ctx context.Context, logger *slog.Logger, shares domain.Shares) error {
	members, err := p.ledger.GetGroupMembers(ctx, p.opts.GroupID)
	if err != nil {
		return fmt.Errorf("listing group members: %w", err)
	}
	known := make(map[int64]struct{}, len(members))
	for _, m := range members {
		known[m.ID] = struct{}{}
	}
	for id := range shares {
		if _, ok := known[id]; !ok {
			logger.Warn("mapped account is not a member of the group", "account_id", id)
		}
	}
	return nil
}

// renderTemplate substitutes {month} and {year} in the description template.
func renderTemplate(template, month, year string) string {
	s := strings.ReplaceAll(template, "{month}", month)
	return strings.ReplaceAll(s, "{year}", year)
}

// markerFromTemplate derives the duplicate-scan marker: the template text
// before the month token, trimmed of trailing separators.
func markerFromTemplate(template string) string {
	marker, _, found := strings.Cut(template, "{month}")
	if found {
		marker = strings.TrimRight(marker, " -–")
	}
	if marker == "" {
		marker = template
	}
	return marker
}
