package core

// AssetType represents the type of financial asset
type AssetType string

const (
	AssetStock AssetType = "stock"
	AssetFund  AssetType = "fund"
)

// Period represents a history granularity
type Period string

const (
	PeriodMin   Period = "min"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// IsValid reports whether p is a known granularity.
func (p Period) IsValid() bool {
	switch p {
	case PeriodMin, PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// Quote represents a normalized real-time price snapshot.
// All numeric fields are zero and Name equals the instrument code
// when the upstream fetch degraded.
type Quote struct {
	Name          string
	Price         float64
	ChangePercent float64
	DailyChange   float64
}

// DegradedQuote returns the zero sentinel for a failed fetch.
// Callers receive this instead of an error.
func DegradedQuote(code string) Quote {
	return Quote{Name: code}
}

// IsDegraded reports whether the quote carries no upstream data.
func (q Quote) IsDegraded() bool {
	return q.Price == 0 && q.ChangePercent == 0 && q.DailyChange == 0
}

// Bar represents one point of a historical series.
// Date is YYYY-MM-DD for day/week/month bars and HHmm for minute bars.
// Minute bars populate only Close. Fund net-value bars are flat
// (Open == Close == High == Low), which downstream rendering relies on
// to tell a valuation series apart from a real candle series.
type Bar struct {
	Date  string
	Open  float64
	Close float64
	High  float64
	Low   float64
}

// IsFlat reports whether the bar is a single valuation rather than a
// traded range.
func (b Bar) IsFlat() bool {
	return b.Open == b.Close && b.High == b.Low && b.Open == b.High
}

// SearchResult represents a candidate instrument match.
type SearchResult struct {
	Code   string
	Name   string
	Type   AssetType
	Market string
}
