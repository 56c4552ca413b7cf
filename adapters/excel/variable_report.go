package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReportRow is one variable requirement line for a contract type
type ReportRow struct {
	Variable  string
	UsedBy    []string // clause codes referencing the variable
	Satisfied bool     // whether the checked data bag provides a value
}

// WriteVariableReport renders the variable-requirements report for one
// contract type as an xlsx workbook, for circulating to whoever fills in
// project data.
func WriteVariableReport(contractType string, rows []ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Variables"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	headers := []string{"Variable", "Used by clauses", "Provided"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write report header: %w", err)
		}
	}

	for i, row := range rows {
		provided := "MISSING"
		if row.Satisfied {
			provided = "yes"
		}
		values := []interface{}{row.Variable, strings.Join(row.UsedBy, ", "), provided}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write report row %d: %w", i+1, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report for %s: %w", contractType, err)
	}
	return buf.Bytes(), nil
}
