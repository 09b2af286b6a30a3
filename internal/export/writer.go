// Package export writes the per-line allocation breakdown of a bill as a
// CSV or XLSX report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"billsplit/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the report header row.
var columns = []string{
	"Owner",
	"Phone",
	"Line Charge",
	"Equipment",
	"One-Time Charges",
	"Subtotal",
	"Account ID",
}

// Writer wraps csv.Writer for exporting a bill allocation as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBill writes one row per line charge followed by a totals row.
func (w *Writer) WriteBill(bill *domain.Bill, mapping domain.OwnerMapping) error {
	for i := range bill.LineCharges {
		if err := w.csv.Write(lineToRow(&bill.LineCharges[i], mapping)); err != nil {
			return err
		}
	}
	return w.csv.Write(totalsRow(bill))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func lineToRow(lc *domain.LineCharge, mapping domain.OwnerMapping) []string {
	accountID := ""
	if id, ok := mapping[lc.Owner]; ok {
		accountID = strconv.FormatInt(id, 10)
	}
	return []string{
		lc.Owner,
		lc.Phone,
		fmtAmount(lc.LineAmount),
		fmtAmount(lc.EquipmentAmount),
		fmtAmount(lc.OneTimeAmount),
		fmtAmount(lc.Subtotal()),
		accountID,
	}
}

func totalsRow(bill *domain.Bill) []string {
	return []string{
		"Total",
		"",
		fmtAmount(bill.Plan),
		fmtAmount(bill.Equipment),
		fmtAmount(bill.OneTimeCharges),
		fmtAmount(bill.TotalDue),
		"",
	}
}

func fmtAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
