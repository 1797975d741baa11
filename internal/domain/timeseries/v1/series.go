package timeseriesv1

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

var (
	// ErrMissingMetaData is returned when the payload lacks the "Meta Data"
	// section or one of its required fields.
	ErrMissingMetaData = errors.New("time series payload is missing meta data")
	// ErrMissingTimeSeries is returned when the payload does not carry exactly
	// one data section next to "Meta Data".
	ErrMissingTimeSeries = errors.New("time series payload has no single data section")
	// ErrUnparseableTimestamp is returned when a bar key matches neither the
	// date nor the date-time layout.
	ErrUnparseableTimestamp = errors.New("unparseable bar timestamp")
	// ErrInvalidNumber is returned when a bar field is not a valid number for
	// its target type.
	ErrInvalidNumber = errors.New("invalid numeric field")
)

const (
	metaDataKey = "Meta Data"

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Entry is one OHLCV bar.
type Entry struct {
	Open   float32
	High   float32
	Low    float32
	Close  float32
	Volume uint32
}

// MetaData carries the descriptive header of a provider time series.
// Interval is empty for non-intraday series.
type MetaData struct {
	Information   string
	Symbol        string
	LastRefreshed string
	Interval      string
	OutputSize    string
	TimeZone      string
}

// TimeSeries is a decoded provider time series: a header plus bars keyed by
// their naive timestamp. Iteration order of Bars carries no meaning.
type TimeSeries struct {
	Meta MetaData
	Bars map[time.Time]Entry

	// seriesKey remembers the dynamic top-level key the bars arrived under,
	// so re-encoding reproduces the wire shape.
	seriesKey string
}

// UnmarshalJSON decodes the provider envelope: a "Meta Data" object plus
// exactly one additional top-level key (whose name varies by kind) mapping
// date strings to numbered bar objects.
//
// Bar keys are processed in lexicographic order and duplicate timestamps
// resolve last-write-wins, so decoding is deterministic.
func (ts *TimeSeries) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	metaRaw, ok := top[metaDataKey]
	if !ok {
		return ErrMissingMetaData
	}
	delete(top, metaDataKey)

	if len(top) != 1 {
		return fmt.Errorf("%w: found %d candidate sections", ErrMissingTimeSeries, len(top))
	}

	var meta MetaData
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return err
	}

	var seriesKey string
	var barsRaw json.RawMessage
	for key, raw := range top {
		seriesKey, barsRaw = key, raw
	}

	var wireBars map[string]wireEntry
	if err := json.Unmarshal(barsRaw, &wireBars); err != nil {
		return err
	}

	keys := make([]string, 0, len(wireBars))
	for key := range wireBars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bars := make(map[time.Time]Entry, len(wireBars))
	for _, key := range keys {
		stamp, err := parseBarTimestamp(key)
		if err != nil {
			return err
		}
		entry, err := wireBars[key].toEntry()
		if err != nil {
			return err
		}
		bars[stamp] = entry
	}

	ts.Meta = meta
	ts.Bars = bars
	ts.seriesKey = seriesKey
	return nil
}

// MarshalJSON re-encodes the series into the provider's wire shape, with
// numbered meta fields and numeric bar fields as strings.
func (ts TimeSeries) MarshalJSON() ([]byte, error) {
	bars := make(map[string]wireEntry, len(ts.Bars))
	for stamp, entry := range ts.Bars {
		bars[ts.formatBarTimestamp(stamp)] = entry.toWire()
	}

	key := ts.seriesKey
	if key == "" {
		if ts.Meta.Interval != "" {
			key = fmt.Sprintf("Time Series (%s)", ts.Meta.Interval)
		} else {
			key = "Time Series (Daily)"
		}
	}

	return json.Marshal(map[string]any{
		metaDataKey: ts.Meta,
		key:         bars,
	})
}

// Opens returns a mapping from timestamp to the bar's open price.
func (ts TimeSeries) Opens() map[time.Time]float32 {
	return ts.project(func(e Entry) float32 { return e.Open })
}

// Highs returns a mapping from timestamp to the bar's high price.
func (ts TimeSeries) Highs() map[time.Time]float32 {
	return ts.project(func(e Entry) float32 { return e.High })
}

// Lows returns a mapping from timestamp to the bar's low price.
func (ts TimeSeries) Lows() map[time.Time]float32 {
	return ts.project(func(e Entry) float32 { return e.Low })
}

// Closes returns a mapping from timestamp to the bar's close price.
func (ts TimeSeries) Closes() map[time.Time]float32 {
	return ts.project(func(e Entry) float32 { return e.Close })
}

// Volumes returns a mapping from timestamp to the bar's volume.
func (ts TimeSeries) Volumes() map[time.Time]uint32 {
	volumes := make(map[time.Time]uint32, len(ts.Bars))
	for stamp, entry := range ts.Bars {
		volumes[stamp] = entry.Volume
	}
	return volumes
}

func (ts TimeSeries) project(pick func(Entry) float32) map[time.Time]float32 {
	values := make(map[time.Time]float32, len(ts.Bars))
	for stamp, entry := range ts.Bars {
		values[stamp] = pick(entry)
	}
	return values
}

func (ts TimeSeries) formatBarTimestamp(stamp time.Time) string {
	if ts.Meta.Interval != "" {
		return stamp.Format(dateTimeLayout)
	}
	return stamp.Format(dateLayout)
}

// parseBarTimestamp tries the strict date layout first, widening to the
// date-time layout on failure. Date-only keys resolve to midnight.
func parseBarTimestamp(key string) (time.Time, error) {
	if stamp, err := time.Parse(dateLayout, key); err == nil {
		return stamp, nil
	}
	stamp, err := time.Parse(dateTimeLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, key)
	}
	return stamp, nil
}

// UnmarshalJSON accepts both meta numbering schemes: "4. Interval" shifts
// "Output Size" and "Time Zone" from the 4th/5th to the 5th/6th prefix.
func (m *MetaData) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	pick := func(dst *string, keys ...string) error {
		for _, key := range keys {
			if value, ok := fields[key]; ok {
				*dst = value
				return nil
			}
		}
		return fmt.Errorf("%w: field %q", ErrMissingMetaData, keys[0])
	}

	var meta MetaData
	if err := pick(&meta.Information, "1. Information"); err != nil {
		return err
	}
	if err := pick(&meta.Symbol, "2. Symbol"); err != nil {
		return err
	}
	if err := pick(&meta.LastRefreshed, "3. Last Refreshed"); err != nil {
		return err
	}
	meta.Interval = fields["4. Interval"]
	if err := pick(&meta.OutputSize, "4. Output Size", "5. Output Size"); err != nil {
		return err
	}
	if err := pick(&meta.TimeZone, "5. Time Zone", "6. Time Zone"); err != nil {
		return err
	}

	*m = meta
	return nil
}

// MarshalJSON re-emits the numbered meta fields, picking the numbering scheme
// by the presence of an interval.
func (m MetaData) MarshalJSON() ([]byte, error) {
	fields := map[string]string{
		"1. Information":    m.Information,
		"2. Symbol":         m.Symbol,
		"3. Last Refreshed": m.LastRefreshed,
	}
	if m.Interval != "" {
		fields["4. Interval"] = m.Interval
		fields["5. Output Size"] = m.OutputSize
		fields["6. Time Zone"] = m.TimeZone
	} else {
		fields["4. Output Size"] = m.OutputSize
		fields["5. Time Zone"] = m.TimeZone
	}
	return json.Marshal(fields)
}

// wireEntry is one bar as it appears on the wire, with numbered field names.
// Fields are kept raw because the provider encodes numbers as strings, while
// plain JSON numbers must be accepted too.
type wireEntry struct {
	Open   json.RawMessage `json:"1. open"`
	High   json.RawMessage `json:"2. high"`
	Low    json.RawMessage `json:"3. low"`
	Close  json.RawMessage `json:"4. close"`
	Volume json.RawMessage `json:"5. volume"`
}

func (w wireEntry) toEntry() (Entry, error) {
	var entry Entry
	var err error
	if entry.Open, err = parsePrice("1. open", w.Open); err != nil {
		return Entry{}, err
	}
	if entry.High, err = parsePrice("2. high", w.High); err != nil {
		return Entry{}, err
	}
	if entry.Low, err = parsePrice("3. low", w.Low); err != nil {
		return Entry{}, err
	}
	if entry.Close, err = parsePrice("4. close", w.Close); err != nil {
		return Entry{}, err
	}
	if entry.Volume, err = parseVolume("5. volume", w.Volume); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (e Entry) toWire() wireEntry {
	quote := func(s string) json.RawMessage {
		return json.RawMessage(strconv.Quote(s))
	}
	price := func(v float32) json.RawMessage {
		return quote(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	return wireEntry{
		Open:   price(e.Open),
		High:   price(e.High),
		Low:    price(e.Low),
		Close:  price(e.Close),
		Volume: quote(strconv.FormatUint(uint64(e.Volume), 10)),
	}
}

// numericText extracts the textual form of a field that may arrive as either
// a JSON string or a JSON number.
func numericText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

func parsePrice(field string, raw json.RawMessage) (float32, error) {
	text, ok := numericText(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	value, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return float32(value), nil
}

func parseVolume(field string, raw json.RawMessage) (uint32, error) {
	text, ok := numericText(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	value, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return uint32(value), nil
}
