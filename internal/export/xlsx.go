package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"billsplit/internal/domain"
)

const sheetName = "Allocation"

// WriteXLSX writes the allocation report as an Excel workbook at path. The
// rows match the CSV layout: header, one row per line charge, totals row.
func WriteXLSX(path string, bill *domain.Bill, mapping domain.OwnerMapping) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	rows := [][]string{columns}
	for i := range bill.LineCharges {
		rows = append(rows, lineToRow(&bill.LineCharges[i], mapping))
	}
	rows = append(rows, totalsRow(bill))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
