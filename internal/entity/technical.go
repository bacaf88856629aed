package entity

// Interpretation pairs a machine readable category with its display text.
type Interpretation struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type MovingAverage struct {
	Period int      `json:"period"`
	Value  *float64 `json:"value"`
}

type RSI struct {
	Period         int            `json:"period"`
	Value          *float64       `json:"value"`
	Interpretation Interpretation `json:"interpretation"`
}

type MACDValues struct {
	Line      *float64 `json:"macd_line"`
	Signal    *float64 `json:"signal_line"`
	Histogram *float64 `json:"histogram"`
}

type MACD struct {
	Values         MACDValues     `json:"values"`
	Interpretation Interpretation `json:"interpretation"`
}

type BollingerValues struct {
	Middle *float64 `json:"middle_band"`
	Upper  *float64 `json:"upper_band"`
	Lower  *float64 `json:"lower_band"`
}

type Bollinger struct {
	Values         BollingerValues `json:"values"`
	Interpretation Interpretation  `json:"interpretation"`
}

// TechnicalSnapshot summarizes the indicators at the last point of a series.
type TechnicalSnapshot struct {
	SMAs      []MovingAverage `json:"smas"`
	RSI       RSI             `json:"rsi"`
	MACD      MACD            `json:"macd"`
	Bollinger Bollinger       `json:"bollinger_bands"`
}

// SMA returns the moving average for period, nil when it was not computed.
func (t TechnicalSnapshot) SMA(period int) *float64 {
	for _, s := range t.SMAs {
		if s.Period == period {
			return s.Value
		}
	}
	return nil
}
