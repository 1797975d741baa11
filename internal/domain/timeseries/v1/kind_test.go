package timeseriesv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	testCases := []struct {
		kind Kind
		want string
	}{
		{KindIntraday, "INTRADAY"},
		{KindDaily, "DAILY"},
		{KindDailyAdjusted, "DAILY_ADJUSTED"},
		{KindWeekly, "WEEKLY"},
		{KindWeeklyAdjusted, "WEEKLY_ADJUSTED"},
		{KindMonthly, "MONTHLY"},
		{KindMonthlyAdjusted, "MONTHLY_ADJUSTED"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.String())

			parsed, err := ParseKind(tc.want)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, parsed)
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("hourly")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestInterval_String(t *testing.T) {
	testCases := []struct {
		interval Interval
		want     string
	}{
		{Interval1Min, "1min"},
		{Interval5Min, "5min"},
		{Interval15Min, "15min"},
		{Interval30Min, "30min"},
		{Interval60Min, "60min"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.interval.String())

			parsed, err := ParseInterval(tc.want)
			require.NoError(t, err)
			assert.Equal(t, tc.interval, parsed)
		})
	}
}

func TestParseInterval_Unknown(t *testing.T) {
	_, err := ParseInterval("2min")
	assert.ErrorIs(t, err, ErrUnknownInterval)
}

func TestRequest_URL(t *testing.T) {
	const (
		baseURL = "https://www.alphavantage.co/query"
		apiKey  = "demo"
	)

	testCases := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "daily",
			req:  Request{Symbol: "AAPL", Kind: KindDaily},
			want: baseURL + "?function=TIME_SERIES_DAILY&symbol=AAPL&apikey=demo",
		},
		{
			name: "weekly adjusted",
			req:  Request{Symbol: "AAPL", Kind: KindWeeklyAdjusted},
			want: baseURL + "?function=TIME_SERIES_WEEKLY_ADJUSTED&symbol=AAPL&apikey=demo",
		},
		{
			name: "intraday appends interval",
			req:  Request{Symbol: "AAPL", Kind: KindIntraday, Interval: Interval5Min},
			want: baseURL + "?function=TIME_SERIES_INTRADAY&symbol=AAPL&apikey=demo&interval=5min",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.req.URL(baseURL, apiKey))
		})
	}
}
