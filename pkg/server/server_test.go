package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/commerce-reports/pkg/handlers/reports"
	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/de-tools/commerce-reports/pkg/models/store"
	auditsvc "github.com/de-tools/commerce-reports/pkg/services/audit"
	"github.com/de-tools/commerce-reports/pkg/services/daterange"
	"github.com/de-tools/commerce-reports/pkg/services/export"
	"github.com/de-tools/commerce-reports/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockOrderSource struct {
	mock.Mock
}

func (m *mockOrderSource) GetOrders(ctx context.Context, start, end time.Time) ([]store.OrderRecord, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]store.OrderRecord), args.Error(1)
}

type mockActivitySource struct {
	mock.Mock
}

func (m *mockActivitySource) GetActivity(ctx context.Context, start, end time.Time) ([]store.ActivityRecord, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]store.ActivityRecord), args.Error(1)
}

type noopAuditLogger struct{}

func (noopAuditLogger) Record(_ context.Context, _ domain.ReportLogEntry) error { return nil }

func testRouter(orders *mockOrderSource, activity *mockActivitySource) http.Handler {
	handler := reports.NewHandler(
		daterange.NewResolver(nil),
		report.NewGenerator(orders, activity),
		export.NewSerializer(),
		auditsvc.BestEffort(noopAuditLogger{}),
	)
	logger := zerolog.Nop()
	return ConfigureRouter(&logger, Dependencies{Reports: handler})
}

func TestReportsRoute(t *testing.T) {
	orders := new(mockOrderSource)
	orders.On("GetOrders", mock.Anything, mock.Anything, mock.Anything).
		Return([]store.OrderRecord{
			{ID: "o1", PlacedAt: time.Now().UTC().Add(-24 * time.Hour), Total: decimal.NewFromInt(10)},
		}, nil)

	router := testRouter(orders, new(mockActivitySource))

	req := httptest.NewRequest("GET", "/api/v1/reports?type=sales&format=csv&timePeriod=last7days", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	orders.AssertExpectations(t)
}

func TestReportsRouteValidation(t *testing.T) {
	router := testRouter(new(mockOrderSource), new(mockActivitySource))

	req := httptest.NewRequest("GET", "/api/v1/reports?type=sales&format=docx&timePeriod=last7days", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := testRouter(new(mockOrderSource), new(mockActivitySource))

	req := httptest.NewRequest("GET", "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
