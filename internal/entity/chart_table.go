package entity

import (
	"encoding/json"
	"math"
	"time"
)

// ChartTable is a multi-ticker table outer-joined on date. Values are aligned with Tickers;
// a missing point is NaN.
type ChartTable struct {
	Tickers []string   `json:"tickers"`
	Rows    []ChartRow `json:"rows"`
}

type ChartRow struct {
	Date   time.Time `json:"date"`
	Values []float64 `json:"values"`
}

type chartRowJSON struct {
	Date   time.Time  `json:"date"`
	Values []*float64 `json:"values"`
}

// MarshalJSON writes NaN values as null since JSON has no NaN.
func (r ChartRow) MarshalJSON() ([]byte, error) {
	out := chartRowJSON{Date: r.Date, Values: make([]*float64, len(r.Values))}
	for i, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out.Values[i] = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads null values back as NaN.
func (r *ChartRow) UnmarshalJSON(data []byte) error {
	var in chartRowJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Date = in.Date
	r.Values = make([]float64, len(in.Values))
	for i, v := range in.Values {
		if v == nil {
			r.Values[i] = math.NaN()
			continue
		}
		r.Values[i] = *v
	}
	return nil
}

// Column returns the dates and values of one column, skipping missing points.
func (t ChartTable) Column(idx int) ([]time.Time, []float64) {
	var dates []time.Time
	var vals []float64
	for _, row := range t.Rows {
		if idx >= len(row.Values) || math.IsNaN(row.Values[idx]) {
			continue
		}
		dates = append(dates, row.Date)
		vals = append(vals, row.Values[idx])
	}
	return dates, vals
}
