package export

import (
	"context"
	"fmt"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// encodeXLSX builds a one-sheet workbook with a header row followed by
// the data rows, matching the CSV layout cell for cell.
func encodeXLSX(_ context.Context, data domain.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(data.Columns()))
	for _, col := range data.Columns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range data.Rows() {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, addr, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}
	return buf.Bytes(), nil
}
