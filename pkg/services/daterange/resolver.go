package daterange

import (
	"strconv"
	"time"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// Clock supplies the reference "now". Injected so resolution is
// deterministic in tests.
type Clock func() time.Time

// RawQuery holds the report time window parameters exactly as they
// arrived on the request, before any validation.
type RawQuery struct {
	TimePeriod string
	Year       string
	StartDate  string
	EndDate    string
}

type Resolver interface {
	Resolve(raw RawQuery) (domain.DateRange, domain.ReportParams, error)
}

type resolver struct {
	now Clock
}

func NewResolver(now Clock) Resolver {
	if now == nil {
		now = time.Now
	}
	return &resolver{now: now}
}

// Resolve turns raw query parameters into a closed [start, end] range.
// Validation order: timePeriod, year, then the custom date pair.
func (r *resolver) Resolve(raw RawQuery) (domain.DateRange, domain.ReportParams, error) {
	var params domain.ReportParams

	period := domain.PeriodKeyword(raw.TimePeriod)
	switch period {
	case domain.PeriodLast7Days, domain.PeriodLastMonth, domain.PeriodLastYear,
		domain.PeriodAllTime, domain.PeriodCustom:
	default:
		return domain.DateRange{}, params, &domain.ValidationError{
			Field:  "timePeriod",
			Reason: "Invalid or missing timePeriod. Use: last7days, lastMonth, lastYear, allTime, or custom",
		}
	}
	params.TimePeriod = period

	var year *int
	if raw.Year != "" {
		y, err := strconv.Atoi(raw.Year)
		if err != nil {
			return domain.DateRange{}, params, &domain.ValidationError{
				Field:  "year",
				Reason: "Invalid year format.",
			}
		}
		year = &y
		params.Year = year
	}

	start, end, err := parseCustomDates(raw.StartDate, raw.EndDate)
	if err != nil {
		return domain.DateRange{}, params, err
	}
	params.StartDate = start
	params.EndDate = end

	now := r.now().UTC()

	switch period {
	case domain.PeriodLast7Days:
		return domain.DateRange{Start: now.AddDate(0, 0, -7), End: now}, params, nil
	case domain.PeriodLastMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{
			Start: monthStart.AddDate(0, -1, 0),
			End:   monthStart.Add(-time.Nanosecond),
		}, params, nil
	case domain.PeriodLastYear:
		y := now.Year() - 1
		if year != nil {
			y = *year
		}
		yearStart := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{
			Start: yearStart,
			End:   yearStart.AddDate(1, 0, 0).Add(-time.Nanosecond),
		}, params, nil
	case domain.PeriodAllTime:
		return domain.DateRange{Start: time.Unix(0, 0).UTC(), End: now}, params, nil
	default: // custom
		if start == nil || end == nil {
			return domain.DateRange{}, params, &domain.ValidationError{
				Field:  "startDate",
				Reason: "Both startDate and endDate must be provided for a custom range.",
			}
		}
		return domain.DateRange{
			Start: *start,
			End:   end.AddDate(0, 0, 1).Add(-time.Nanosecond), // whole last day
		}, params, nil
	}
}

func parseCustomDates(rawStart, rawEnd string) (*time.Time, *time.Time, error) {
	if rawStart == "" && rawEnd == "" {
		return nil, nil, nil
	}
	if rawStart == "" || rawEnd == "" {
		return nil, nil, &domain.ValidationError{
			Field:  "startDate",
			Reason: "Both startDate and endDate must be provided for a custom range.",
		}
	}

	start, err := time.ParseInLocation(dateLayout, rawStart, time.UTC)
	if err != nil {
		return nil, nil, &domain.ValidationError{
			Field:  "startDate",
			Reason: "Invalid startDate or endDate format. Use YYYY-MM-DD.",
		}
	}
	end, err := time.ParseInLocation(dateLayout, rawEnd, time.UTC)
	if err != nil {
		return nil, nil, &domain.ValidationError{
			Field:  "endDate",
			Reason: "Invalid startDate or endDate format. Use YYYY-MM-DD.",
		}
	}
	if start.After(end) {
		return nil, nil, &domain.ValidationError{
			Field:  "startDate",
			Reason: "startDate must be before endDate.",
		}
	}
	return &start, &end, nil
}
