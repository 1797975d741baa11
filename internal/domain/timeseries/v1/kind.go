package timeseriesv1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrUnknownKind is returned when a kind name cannot be parsed.
	ErrUnknownKind = errors.New("unknown time series kind")
	// ErrUnknownInterval is returned when an interval name cannot be parsed.
	ErrUnknownInterval = errors.New("unknown intraday interval")
)

// Kind represents the bucketing of a provider time series.
type Kind int

const (
	// KindIntraday buckets bars at a sub-daily Interval.
	KindIntraday Kind = iota
	// KindDaily buckets bars per trading day.
	KindDaily
	// KindDailyAdjusted is KindDaily with split/dividend adjustments.
	KindDailyAdjusted
	// KindWeekly buckets bars per week.
	KindWeekly
	// KindWeeklyAdjusted is KindWeekly with split/dividend adjustments.
	KindWeeklyAdjusted
	// KindMonthly buckets bars per month.
	KindMonthly
	// KindMonthlyAdjusted is KindMonthly with split/dividend adjustments.
	KindMonthlyAdjusted
)

// String returns the canonical uppercase provider name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIntraday:
		return "INTRADAY"
	case KindDaily:
		return "DAILY"
	case KindDailyAdjusted:
		return "DAILY_ADJUSTED"
	case KindWeekly:
		return "WEEKLY"
	case KindWeeklyAdjusted:
		return "WEEKLY_ADJUSTED"
	case KindMonthly:
		return "MONTHLY"
	case KindMonthlyAdjusted:
		return "MONTHLY_ADJUSTED"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a case-insensitive kind name such as "daily" or
// "WEEKLY_ADJUSTED".
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "INTRADAY":
		return KindIntraday, nil
	case "DAILY":
		return KindDaily, nil
	case "DAILY_ADJUSTED":
		return KindDailyAdjusted, nil
	case "WEEKLY":
		return KindWeekly, nil
	case "WEEKLY_ADJUSTED":
		return KindWeeklyAdjusted, nil
	case "MONTHLY":
		return KindMonthly, nil
	case "MONTHLY_ADJUSTED":
		return KindMonthlyAdjusted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Interval represents the bar width of an intraday series.
type Interval int

const (
	// Interval1Min is a one-minute bar width.
	Interval1Min Interval = iota
	// Interval5Min is a five-minute bar width.
	Interval5Min
	// Interval15Min is a fifteen-minute bar width.
	Interval15Min
	// Interval30Min is a thirty-minute bar width.
	Interval30Min
	// Interval60Min is a sixty-minute bar width.
	Interval60Min
)

// String returns the canonical provider name of the interval.
func (i Interval) String() string {
	switch i {
	case Interval1Min:
		return "1min"
	case Interval5Min:
		return "5min"
	case Interval15Min:
		return "15min"
	case Interval30Min:
		return "30min"
	case Interval60Min:
		return "60min"
	default:
		return "unknown"
	}
}

// ParseInterval parses a provider interval name such as "5min".
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(s) {
	case "1min", "1m":
		return Interval1Min, nil
	case "5min", "5m":
		return Interval5Min, nil
	case "15min", "15m":
		return Interval15Min, nil
	case "30min", "30m":
		return Interval30Min, nil
	case "60min", "60m":
		return Interval60Min, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
}

// Request identifies one time series to retrieve. Interval is consulted only
// when Kind is KindIntraday.
type Request struct {
	Symbol   string
	Kind     Kind
	Interval Interval
}

// URL synthesizes the provider query URL for the request.
func (r Request) URL(baseURL, apiKey string) string {
	u := fmt.Sprintf("%s?function=TIME_SERIES_%s&symbol=%s&apikey=%s",
		baseURL, r.Kind, url.QueryEscape(r.Symbol), url.QueryEscape(apiKey))
	if r.Kind == KindIntraday {
		u += fmt.Sprintf("&interval=%s", r.Interval)
	}
	return u
}
