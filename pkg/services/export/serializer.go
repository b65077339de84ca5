package export

import (
	"context"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
)

// Serializer converts a generated report into download-ready bytes in
// one of the supported formats. The format set is closed; every encoder
// emits exactly the rows domain.ReportData.Rows() reports, so content is
// identical across formats.
type Serializer interface {
	Serialize(ctx context.Context, data domain.ReportData, format domain.ExportFormat) (domain.Export, error)
}

type encodeFunc func(ctx context.Context, data domain.ReportData) ([]byte, error)

type serializer struct {
	encoders map[domain.ExportFormat]entry
}

type entry struct {
	encode      encodeFunc
	contentType string
}

func NewSerializer() Serializer {
	return &serializer{
		encoders: map[domain.ExportFormat]entry{
			domain.FormatCSV:  {encode: encodeCSV, contentType: "text/csv"},
			domain.FormatPDF:  {encode: encodePDF, contentType: "application/pdf"},
			domain.FormatXLSX: {encode: encodeXLSX, contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		},
	}
}

func (s *serializer) Serialize(
	ctx context.Context,
	data domain.ReportData,
	format domain.ExportFormat,
) (domain.Export, error) {
	enc, ok := s.encoders[format]
	if !ok {
		return domain.Export{}, &domain.UnsupportedFormatError{Format: format}
	}

	payload, err := enc.encode(ctx, data)
	if err != nil {
		return domain.Export{}, &domain.SerializationError{Format: format, Err: err}
	}

	return domain.Export{
		Bytes:       payload,
		ContentType: enc.contentType,
		Ext:         string(format),
	}, nil
}
