package timeseriesv1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyPayload = `{
	"Meta Data": {
		"1. Information": "Daily Prices (open, high, low, close) and Volumes",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-01-02",
		"4. Output Size": "Compact",
		"5. Time Zone": "US/Eastern"
	},
	"Time Series (Daily)": {
		"2024-01-02": {
			"1. open": "187.15",
			"2. high": "188.44",
			"3. low": "183.885",
			"4. close": "185.64",
			"5. volume": "82488674"
		}
	}
}`

const intradayPayload = `{
	"Meta Data": {
		"1. Information": "Intraday (1min) open, high, low, close prices and volume",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-01-02 09:31:00",
		"4. Interval": "1min",
		"5. Output Size": "Compact",
		"6. Time Zone": "US/Eastern"
	},
	"Time Series (1min)": {
		"2024-01-02 09:31:00": {
			"1. open": "187.15",
			"2. high": "187.31",
			"3. low": "187.10",
			"4. close": "187.27",
			"5. volume": "52164"
		}
	}
}`

func TestTimeSeries_DecodeDaily(t *testing.T) {
	var series TimeSeries
	require.NoError(t, json.Unmarshal([]byte(dailyPayload), &series))

	assert.Equal(t, "AAPL", series.Meta.Symbol)
	assert.Equal(t, "2024-01-02", series.Meta.LastRefreshed)
	assert.Empty(t, series.Meta.Interval)
	assert.Equal(t, "Compact", series.Meta.OutputSize)
	assert.Equal(t, "US/Eastern", series.Meta.TimeZone)

	require.Len(t, series.Bars, 1)
	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	entry, ok := series.Bars[midnight]
	require.True(t, ok)
	assert.Equal(t, float32(187.15), entry.Open)
	assert.Equal(t, float32(188.44), entry.High)
	assert.Equal(t, float32(183.885), entry.Low)
	assert.Equal(t, float32(185.64), entry.Close)
	assert.Equal(t, uint32(82488674), entry.Volume)
}

func TestTimeSeries_DecodeIntraday(t *testing.T) {
	var series TimeSeries
	require.NoError(t, json.Unmarshal([]byte(intradayPayload), &series))

	assert.Equal(t, "1min", series.Meta.Interval)
	assert.Equal(t, "Compact", series.Meta.OutputSize)
	assert.Equal(t, "US/Eastern", series.Meta.TimeZone)

	require.Len(t, series.Bars, 1)
	minute := time.Date(2024, 1, 2, 9, 31, 0, 0, time.UTC)
	entry, ok := series.Bars[minute]
	require.True(t, ok)
	assert.Equal(t, float32(187.27), entry.Close)
	assert.Equal(t, uint32(52164), entry.Volume)
}

func TestTimeSeries_MetaNumberingSchemesAreEquivalent(t *testing.T) {
	shifted := `{
		"1. Information": "Daily Prices",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-01-02",
		"5. Output Size": "Compact",
		"6. Time Zone": "US/Eastern"
	}`
	plain := `{
		"1. Information": "Daily Prices",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-01-02",
		"4. Output Size": "Compact",
		"5. Time Zone": "US/Eastern"
	}`

	var a, b MetaData
	require.NoError(t, json.Unmarshal([]byte(shifted), &a))
	require.NoError(t, json.Unmarshal([]byte(plain), &b))

	assert.Equal(t, a, b)
}

func TestTimeSeries_DecodeErrors(t *testing.T) {
	t.Run("two data sections", func(t *testing.T) {
		payload := `{
			"Meta Data": {
				"1. Information": "x",
				"2. Symbol": "AAPL",
				"3. Last Refreshed": "2024-01-02",
				"4. Output Size": "Compact",
				"5. Time Zone": "US/Eastern"
			},
			"Time Series (Daily)": {},
			"Weekly Time Series": {}
		}`

		var series TimeSeries
		err := json.Unmarshal([]byte(payload), &series)
		assert.ErrorIs(t, err, ErrMissingTimeSeries)
	})

	t.Run("no data section", func(t *testing.T) {
		payload := `{
			"Meta Data": {
				"1. Information": "x",
				"2. Symbol": "AAPL",
				"3. Last Refreshed": "2024-01-02",
				"4. Output Size": "Compact",
				"5. Time Zone": "US/Eastern"
			}
		}`

		var series TimeSeries
		err := json.Unmarshal([]byte(payload), &series)
		assert.ErrorIs(t, err, ErrMissingTimeSeries)
	})

	t.Run("missing meta data", func(t *testing.T) {
		var series TimeSeries
		err := json.Unmarshal([]byte(`{"Time Series (Daily)": {}}`), &series)
		assert.ErrorIs(t, err, ErrMissingMetaData)
	})

	t.Run("missing meta field", func(t *testing.T) {
		payload := `{
			"Meta Data": {
				"1. Information": "x",
				"2. Symbol": "AAPL",
				"3. Last Refreshed": "2024-01-02"
			},
			"Time Series (Daily)": {}
		}`

		var series TimeSeries
		err := json.Unmarshal([]byte(payload), &series)
		assert.ErrorIs(t, err, ErrMissingMetaData)
	})

	t.Run("unparseable timestamp names the key", func(t *testing.T) {
		payload := `{
			"Meta Data": {
				"1. Information": "x",
				"2. Symbol": "AAPL",
				"3. Last Refreshed": "2024-01-02",
				"4. Output Size": "Compact",
				"5. Time Zone": "US/Eastern"
			},
			"Time Series (Daily)": {
				"02/01/2024": {
					"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"
				}
			}
		}`

		var series TimeSeries
		err := json.Unmarshal([]byte(payload), &series)
		require.ErrorIs(t, err, ErrUnparseableTimestamp)
		assert.Contains(t, err.Error(), "02/01/2024")
	})

	t.Run("invalid number names the field", func(t *testing.T) {
		payload := `{
			"Meta Data": {
				"1. Information": "x",
				"2. Symbol": "AAPL",
				"3. Last Refreshed": "2024-01-02",
				"4. Output Size": "Compact",
				"5. Time Zone": "US/Eastern"
			},
			"Time Series (Daily)": {
				"2024-01-02": {
					"1. open": "not-a-number", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"
				}
			}
		}`

		var series TimeSeries
		err := json.Unmarshal([]byte(payload), &series)
		require.ErrorIs(t, err, ErrInvalidNumber)
		assert.Contains(t, err.Error(), "1. open")
	})

	t.Run("volume out of range", func(t *testing.T) {
		payload := `{
			"Meta Data": {
				"1. Information": "x",
				"2. Symbol": "AAPL",
				"3. Last Refreshed": "2024-01-02",
				"4. Output Size": "Compact",
				"5. Time Zone": "US/Eastern"
			},
			"Time Series (Daily)": {
				"2024-01-02": {
					"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "4294967296"
				}
			}
		}`

		var series TimeSeries
		err := json.Unmarshal([]byte(payload), &series)
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})
}

func TestTimeSeries_AcceptsPlainJSONNumbers(t *testing.T) {
	payload := `{
		"Meta Data": {
			"1. Information": "x",
			"2. Symbol": "AAPL",
			"3. Last Refreshed": "2024-01-02",
			"4. Output Size": "Compact",
			"5. Time Zone": "US/Eastern"
		},
		"Time Series (Daily)": {
			"2024-01-02": {
				"1. open": 187.15, "2. high": 188.44, "3. low": 183.885, "4. close": 185.64, "5. volume": 82488674
			}
		}
	}`

	var series TimeSeries
	require.NoError(t, json.Unmarshal([]byte(payload), &series))

	entry := series.Bars[time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)]
	assert.Equal(t, float32(187.15), entry.Open)
	assert.Equal(t, uint32(82488674), entry.Volume)
}

func TestTimeSeries_DuplicateTimestampsLastWriteWins(t *testing.T) {
	// "2024-01-02" and "2024-01-02 00:00:00" resolve to the same instant.
	// Keys are processed in lexicographic order, so the date-time form wins.
	payload := `{
		"Meta Data": {
			"1. Information": "x",
			"2. Symbol": "AAPL",
			"3. Last Refreshed": "2024-01-02",
			"4. Output Size": "Compact",
			"5. Time Zone": "US/Eastern"
		},
		"Time Series (Daily)": {
			"2024-01-02": {
				"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"
			},
			"2024-01-02 00:00:00": {
				"1. open": "2", "2. high": "2", "3. low": "2", "4. close": "2", "5. volume": "2"
			}
		}
	}`

	var series TimeSeries
	require.NoError(t, json.Unmarshal([]byte(payload), &series))

	require.Len(t, series.Bars, 1)
	entry := series.Bars[time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)]
	assert.Equal(t, uint32(2), entry.Volume)
}

func TestTimeSeries_RoundTrip(t *testing.T) {
	for _, payload := range []string{dailyPayload, intradayPayload} {
		var original TimeSeries
		require.NoError(t, json.Unmarshal([]byte(payload), &original))

		encoded, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded TimeSeries
		require.NoError(t, json.Unmarshal(encoded, &decoded))

		assert.Equal(t, original.Meta, decoded.Meta)
		assert.Equal(t, original.Bars, decoded.Bars)
	}
}

func TestTimeSeries_Projections(t *testing.T) {
	var series TimeSeries
	require.NoError(t, json.Unmarshal([]byte(dailyPayload), &series))

	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, map[time.Time]float32{midnight: 187.15}, series.Opens())
	assert.Equal(t, map[time.Time]float32{midnight: 188.44}, series.Highs())
	assert.Equal(t, map[time.Time]float32{midnight: 183.885}, series.Lows())
	assert.Equal(t, map[time.Time]float32{midnight: 185.64}, series.Closes())
	assert.Equal(t, map[time.Time]uint32{midnight: 82488674}, series.Volumes())
}
