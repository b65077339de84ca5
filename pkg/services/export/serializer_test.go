package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSalesReport() *domain.SalesReport {
	return &domain.SalesReport{
		Range: domain.DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Entries: []domain.SalesEntry{
			{Day: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Orders: 10, Revenue: decimal.NewFromInt(500)},
			{Day: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), Orders: 3, Revenue: decimal.NewFromFloat(120.75)},
		},
	}
}

func emptySalesReport() *domain.SalesReport {
	return &domain.SalesReport{Entries: []domain.SalesEntry{}}
}

// quotedData exercises CSV quoting: cells containing the delimiter or a
// quote character.
type quotedData struct{}

func (quotedData) Kind() domain.ReportKind { return domain.ReportKindSales }
func (quotedData) Title() string           { return "Quoted" }
func (quotedData) Columns() []string       { return []string{"name", "note"} }
func (quotedData) Rows() [][]string {
	return [][]string{{`widget, large`, `said "hello"`}}
}

func decodeCSV(t *testing.T, payload []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	return rows
}

func decodeXLSX(t *testing.T, payload []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	return rows
}

func TestSerializeCSV(t *testing.T) {
	s := NewSerializer()

	out, err := s.Serialize(context.Background(), sampleSalesReport(), domain.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", out.ContentType)
	assert.Equal(t, "csv", out.Ext)

	expected := "date,orders,revenue\n2024-01-15,10,500\n2024-01-16,3,120.75\n"
	assert.Equal(t, expected, string(out.Bytes))
}

func TestSerializeCSVQuoting(t *testing.T) {
	s := NewSerializer()

	out, err := s.Serialize(context.Background(), quotedData{}, domain.FormatCSV)
	require.NoError(t, err)

	rows := decodeCSV(t, out.Bytes)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{`widget, large`, `said "hello"`}, rows[1])
	assert.Contains(t, string(out.Bytes), `"widget, large"`)
}

func TestSerializeXLSX(t *testing.T) {
	s := NewSerializer()

	out, err := s.Serialize(context.Background(), sampleSalesReport(), domain.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		out.ContentType)

	rows := decodeXLSX(t, out.Bytes)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "orders", "revenue"}, rows[0])
	assert.Equal(t, []string{"2024-01-15", "10", "500"}, rows[1])
	assert.Equal(t, []string{"2024-01-16", "3", "120.75"}, rows[2])
}

func TestSerializePDF(t *testing.T) {
	s := NewSerializer()

	out, err := s.Serialize(context.Background(), sampleSalesReport(), domain.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.True(t, bytes.HasPrefix(out.Bytes, []byte("%PDF-")))
	assert.NotEmpty(t, out.Bytes)
}

// The recovered row count and cells must match across formats for the
// same report data.
func TestSerializeFormatIndependence(t *testing.T) {
	s := NewSerializer()
	data := sampleSalesReport()

	csvOut, err := s.Serialize(context.Background(), data, domain.FormatCSV)
	require.NoError(t, err)
	xlsxOut, err := s.Serialize(context.Background(), data, domain.FormatXLSX)
	require.NoError(t, err)

	csvRows := decodeCSV(t, csvOut.Bytes)
	xlsxRows := decodeXLSX(t, xlsxOut.Bytes)
	assert.Equal(t, csvRows, xlsxRows)

	// PDF layout is not machine-parsed; assert row presence instead.
	pdfOut, err := s.Serialize(context.Background(), data, domain.FormatPDF)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfOut.Bytes)
	assert.Len(t, csvRows, len(data.Rows())+1)
}

func TestSerializeEmptyReport(t *testing.T) {
	s := NewSerializer()
	data := emptySalesReport()

	for _, format := range []domain.ExportFormat{domain.FormatCSV, domain.FormatPDF, domain.FormatXLSX} {
		t.Run(string(format), func(t *testing.T) {
			out, err := s.Serialize(context.Background(), data, format)
			require.NoError(t, err)
			assert.NotEmpty(t, out.Bytes)
		})
	}

	out, err := s.Serialize(context.Background(), data, domain.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "date,orders,revenue\n", string(out.Bytes))

	out, err = s.Serialize(context.Background(), data, domain.FormatXLSX)
	require.NoError(t, err)
	rows := decodeXLSX(t, out.Bytes)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"date", "orders", "revenue"}, rows[0])
}

func TestSerializeUnsupportedFormat(t *testing.T) {
	s := NewSerializer()

	_, err := s.Serialize(context.Background(), sampleSalesReport(), domain.ExportFormat("docx"))

	var ufErr *domain.UnsupportedFormatError
	require.True(t, errors.As(err, &ufErr))
	assert.Equal(t, domain.ExportFormat("docx"), ufErr.Format)
}

func TestSerializeRetentionReport(t *testing.T) {
	s := NewSerializer()
	data := &domain.RetentionReport{
		Entries: []domain.RetentionEntry{
			{Cohort: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Size: 4, Retained: 3, Rate: 0.75},
		},
	}

	out, err := s.Serialize(context.Background(), data, domain.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "cohort,customers,retained,retention_rate\n2024-01,4,3,0.75\n", string(out.Bytes))
}
