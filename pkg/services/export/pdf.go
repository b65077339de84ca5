package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pdfMargin    = 15.0
	pdfPageWidth = 210.0 // A4 portrait
	pdfRowHeight = 7.0
)

// encodePDF renders the report as a single table: title, header row,
// then data rows in aggregation order. Layout is intentionally plain;
// only completeness and order matter.
func encodePDF(_ context.Context, data domain.ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, data.Title(), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	columns := data.Columns()
	colWidth := (pdfPageWidth - 2*pdfMargin) / float64(len(columns))

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(colWidth, pdfRowHeight, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range data.Rows() {
		for _, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}
