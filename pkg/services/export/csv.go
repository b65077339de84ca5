package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
)

// encodeCSV writes a header row of column names followed by the data
// rows. encoding/csv handles quoting of fields containing delimiters or
// quotes.
func encodeCSV(_ context.Context, data domain.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(data.Columns()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range data.Rows() {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
