package audit

import (
	"context"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Logger persists report generation entries.
type Logger interface {
	Record(ctx context.Context, entry domain.ReportLogEntry) error
}

type bestEffort struct {
	sink Logger
}

// BestEffort wraps a Logger so a failed audit write can never fail the
// report request: the error is recorded on the request logger and
// swallowed.
func BestEffort(sink Logger) Logger {
	return &bestEffort{sink: sink}
}

func (b *bestEffort) Record(ctx context.Context, entry domain.ReportLogEntry) error {
	if err := b.sink.Record(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("kind", string(entry.Kind)).
			Str("format", string(entry.Format)).
			Msg("failed to record report generation")
	}
	return nil
}
