package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/de-tools/commerce-reports/pkg/models/api"
	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/de-tools/commerce-reports/pkg/server/middleware"
	"github.com/de-tools/commerce-reports/pkg/services/audit"
	"github.com/de-tools/commerce-reports/pkg/services/daterange"
	"github.com/de-tools/commerce-reports/pkg/services/export"
	"github.com/de-tools/commerce-reports/pkg/services/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	resolver   daterange.Resolver
	generator  report.Generator
	serializer export.Serializer
	auditLog   audit.Logger
	now        func() time.Time
}

func NewHandler(
	resolver daterange.Resolver,
	generator report.Generator,
	serializer export.Serializer,
	auditLog audit.Logger,
) *Handler {
	return &Handler{
		resolver:   resolver,
		generator:  generator,
		serializer: serializer,
		auditLog:   auditLog,
		now:        time.Now,
	}
}

// GenerateReport runs the export pipeline:
// validate -> resolve range -> aggregate -> log -> serialize -> respond.
// Any failed step short-circuits; nothing is written before serialization
// succeeds, so a response is either a complete file or an error body.
//
// Validation order is fixed (format, type, then the time window) so the
// first error surfaced is deterministic when several fields are invalid.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	format, err := domain.ParseExportFormat(q.Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	kind, err := domain.ParseReportKind(q.Get("type"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	dateRange, params, err := h.resolver.Resolve(daterange.RawQuery{
		TimePeriod: q.Get("timePeriod"),
		Year:       q.Get("year"),
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := h.generator.Generate(ctx, kind, dateRange)
	if err != nil {
		writeError(w, r, err)
		return
	}

	generatedAt := h.now().UTC()

	// Audit write is best-effort; the wrapper swallows sink failures so
	// a broken audit store cannot fail an otherwise successful export.
	_ = h.auditLog.Record(ctx, domain.ReportLogEntry{
		ID:          uuid.New(),
		Kind:        kind,
		Format:      format,
		UserID:      middleware.UserIDFromContext(ctx),
		Parameters:  params,
		GeneratedAt: generatedAt,
	})

	out, err := h.serializer.Serialize(ctx, data, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", kind.Slug(), generatedAt.Format(time.RFC3339), out.Ext)
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(out.Bytes); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write report payload")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	status := http.StatusInternalServerError
	message := "internal server error"

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		status = http.StatusBadRequest
		message = vErr.Reason
	} else {
		logger.Error().Err(err).Msg("report generation failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Error{Status: status, Message: message}); err != nil {
		logger.Error().Err(err).Msg("failed to encode error response")
	}
}
