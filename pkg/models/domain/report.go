package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type ReportKind string

const (
	ReportKindSales             ReportKind = "sales"
	ReportKindCustomerRetention ReportKind = "customer_retention"
)

func ParseReportKind(raw string) (ReportKind, error) {
	switch ReportKind(raw) {
	case ReportKindSales, ReportKindCustomerRetention:
		return ReportKind(raw), nil
	}
	return "", &ValidationError{Field: "type", Reason: "Invalid type. Use: sales or customer_retention"}
}

// Slug is the kind's file-name form, e.g. "customer-retention-report".
func (k ReportKind) Slug() string {
	switch k {
	case ReportKindCustomerRetention:
		return "customer-retention-report"
	default:
		return fmt.Sprintf("%s-report", string(k))
	}
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
	FormatXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case FormatCSV, FormatPDF, FormatXLSX:
		return ExportFormat(raw), nil
	}
	return "", &ValidationError{Field: "format", Reason: "Invalid format. Use: csv, pdf, or xlsx"}
}

type PeriodKeyword string

const (
	PeriodLast7Days PeriodKeyword = "last7days"
	PeriodLastMonth PeriodKeyword = "lastMonth"
	PeriodLastYear  PeriodKeyword = "lastYear"
	PeriodAllTime   PeriodKeyword = "allTime"
	PeriodCustom    PeriodKeyword = "custom"
)

// DateRange is a fully resolved, closed interval [Start, End].
// Immutable once produced by the resolver.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ReportParams is the resolved snapshot of a report request, kept for
// the audit trail.
type ReportParams struct {
	TimePeriod PeriodKeyword `json:"time_period"`
	Year       *int          `json:"year,omitempty"`
	StartDate  *time.Time    `json:"start_date,omitempty"`
	EndDate    *time.Time    `json:"end_date,omitempty"`
}

// ReportData is a generated report ready for serialization. Rows returns
// the canonical cell rendering every export format emits, which is what
// keeps the three formats content-identical.
type ReportData interface {
	Kind() ReportKind
	Title() string
	Columns() []string
	Rows() [][]string
}

// Export is a serialized report payload.
type Export struct {
	Bytes       []byte
	ContentType string
	Ext         string
}

type SalesEntry struct {
	Day     time.Time
	Orders  int
	Revenue decimal.Decimal
}

type SalesReport struct {
	Range   DateRange
	Entries []SalesEntry
}

func (r *SalesReport) Kind() ReportKind { return ReportKindSales }
func (r *SalesReport) Title() string    { return "Sales Report" }

func (r *SalesReport) Columns() []string {
	return []string{"date", "orders", "revenue"}
}

func (r *SalesReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, []string{
			e.Day.Format("2006-01-02"),
			strconv.Itoa(e.Orders),
			e.Revenue.String(),
		})
	}
	return rows
}

type RetentionEntry struct {
	Cohort   time.Time // first day of the cohort month
	Size     int
	Retained int
	Rate     float64
}

type RetentionReport struct {
	Range   DateRange
	Entries []RetentionEntry
}

func (r *RetentionReport) Kind() ReportKind { return ReportKindCustomerRetention }
func (r *RetentionReport) Title() string    { return "Customer Retention Report" }

func (r *RetentionReport) Columns() []string {
	return []string{"cohort", "customers", "retained", "retention_rate"}
}

func (r *RetentionReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, []string{
			e.Cohort.Format("2006-01"),
			strconv.Itoa(e.Size),
			strconv.Itoa(e.Retained),
			strconv.FormatFloat(e.Rate, 'f', 2, 64),
		})
	}
	return rows
}
