package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"billsplit/internal/domain"
	"billsplit/internal/service"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// renderResult formats a pipeline result for the terminal.
func renderResult(result *service.Result, mapping domain.OwnerMapping) string {
	var b strings.Builder

	bill := result.Bill
	b.WriteString(titleStyle.Render(fmt.Sprintf("Bill %s/%s", bill.Month, bill.Year)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  total due $%.2f, %d lines\n", bill.TotalDue, len(bill.LineCharges))))
	b.WriteString("\n")

	names := ownerNames(mapping)
	ids := make([]int64, 0, len(result.Shares))
	for id := range result.Shares {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("account %d", id)
		}
		fmt.Fprintf(&b, "  %-20s $%.2f\n", name, result.Shares[id])
	}
	fmt.Fprintf(&b, "  %-20s $%.2f\n", "Total", result.Shares.Total())

	for _, owner := range result.Skipped {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  ! %s has no mapping entry, line dropped", owner)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case result.Duplicate != nil:
		b.WriteString(warnStyle.Render(fmt.Sprintf(
			"Duplicate found: %q (id %d, $%s), nothing submitted.",
			result.Duplicate.Description, result.Duplicate.ID, result.Duplicate.Cost)))
	case result.DryRun:
		b.WriteString(titleStyle.Render("Dry run") + dimStyle.Render(" - would submit:"))
		b.WriteString("\n\n" + dimStyle.Render(result.Description) + "\n\n")
		b.WriteString(result.Breakdown)
	default:
		b.WriteString(successStyle.Render(fmt.Sprintf(
			"Created expense %q (id %d).", result.Description, result.Expense.ID)))
	}
	b.WriteString("\n")

	return b.String()
}

// ownerNames inverts the owner mapping for display.
func ownerNames(mapping domain.OwnerMapping) map[int64]string {
	names := make(map[int64]string, len(mapping))
	for name, id := range mapping {
		names[id] = name
	}
	return names
}
