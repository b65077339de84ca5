package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
	"github.com/de-tools/commerce-reports/pkg/models/store"
	"github.com/shopspring/decimal"
)

// OrderSource reads order rows whose timestamp falls in [start, end].
type OrderSource interface {
	GetOrders(ctx context.Context, start, end time.Time) ([]store.OrderRecord, error)
}

// ActivitySource reads customer activity rows in [start, end].
type ActivitySource interface {
	GetActivity(ctx context.Context, start, end time.Time) ([]store.ActivityRecord, error)
}

type Generator interface {
	Generate(ctx context.Context, kind domain.ReportKind, r domain.DateRange) (domain.ReportData, error)
}

type aggregateFunc func(ctx context.Context, r domain.DateRange) (domain.ReportData, error)

type generator struct {
	orders     OrderSource
	activity   ActivitySource
	aggregates map[domain.ReportKind]aggregateFunc
}

func NewGenerator(orders OrderSource, activity ActivitySource) Generator {
	g := &generator{
		orders:   orders,
		activity: activity,
	}
	g.aggregates = map[domain.ReportKind]aggregateFunc{
		domain.ReportKindSales:             g.generateSales,
		domain.ReportKindCustomerRetention: g.generateRetention,
	}
	return g
}

// Generate re-reads source data on every call; nothing is cached across
// requests.
func (g *generator) Generate(
	ctx context.Context,
	kind domain.ReportKind,
	r domain.DateRange,
) (domain.ReportData, error) {
	aggregate, ok := g.aggregates[kind]
	if !ok {
		return nil, fmt.Errorf("no aggregation registered for report kind %q", kind)
	}
	return aggregate(ctx, r)
}

// generateSales groups orders by calendar day, counting orders and
// summing revenue per day. Rows come back ordered by date ascending; an
// empty range yields an empty, well-formed report.
func (g *generator) generateSales(ctx context.Context, r domain.DateRange) (domain.ReportData, error) {
	records, err := g.orders.GetOrders(ctx, r.Start, r.End)
	if err != nil {
		return nil, &domain.DataSourceError{Kind: domain.ReportKindSales, Err: err}
	}

	type dayTotals struct {
		orders  int
		revenue decimal.Decimal
	}
	byDay := make(map[time.Time]*dayTotals)
	for _, rec := range records {
		day := truncateToDay(rec.PlacedAt)
		totals, ok := byDay[day]
		if !ok {
			totals = &dayTotals{}
			byDay[day] = totals
		}
		totals.orders++
		totals.revenue = totals.revenue.Add(rec.Total)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	entries := make([]domain.SalesEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, domain.SalesEntry{
			Day:     day,
			Orders:  byDay[day].orders,
			Revenue: byDay[day].revenue,
		})
	}

	return &domain.SalesReport{Range: r, Entries: entries}, nil
}

// generateRetention partitions customers into monthly cohorts by first
// activity inside the range. A customer counts as retained when they are
// active again in any month after their cohort month.
func (g *generator) generateRetention(ctx context.Context, r domain.DateRange) (domain.ReportData, error) {
	records, err := g.activity.GetActivity(ctx, r.Start, r.End)
	if err != nil {
		return nil, &domain.DataSourceError{Kind: domain.ReportKindCustomerRetention, Err: err}
	}

	firstSeen := make(map[string]time.Time)
	activeMonths := make(map[string]map[time.Time]struct{})
	for _, rec := range records {
		month := truncateToMonth(rec.OccurredAt)
		if first, ok := firstSeen[rec.CustomerID]; !ok || month.Before(first) {
			firstSeen[rec.CustomerID] = month
		}
		if activeMonths[rec.CustomerID] == nil {
			activeMonths[rec.CustomerID] = make(map[time.Time]struct{})
		}
		activeMonths[rec.CustomerID][month] = struct{}{}
	}

	type cohortTotals struct {
		size     int
		retained int
	}
	cohorts := make(map[time.Time]*cohortTotals)
	for customer, cohort := range firstSeen {
		totals, ok := cohorts[cohort]
		if !ok {
			totals = &cohortTotals{}
			cohorts[cohort] = totals
		}
		totals.size++
		for month := range activeMonths[customer] {
			if month.After(cohort) {
				totals.retained++
				break
			}
		}
	}

	months := make([]time.Time, 0, len(cohorts))
	for month := range cohorts {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	entries := make([]domain.RetentionEntry, 0, len(months))
	for _, month := range months {
		totals := cohorts[month]
		rate := 0.0
		if totals.size > 0 {
			rate = float64(totals.retained) / float64(totals.size)
		}
		entries = append(entries, domain.RetentionEntry{
			Cohort:   month,
			Size:     totals.size,
			Retained: totals.retained,
			Rate:     rate,
		})
	}

	return &domain.RetentionReport{Range: r, Entries: entries}, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
