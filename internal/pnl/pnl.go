// Package pnl derives display metrics from a stored holding and a
// fetched quote. Pure functions, no I/O.
package pnl

import "github.com/wealthwise/marketdata/internal/core"

// EquityPosition is a stored stock holding.
type EquityPosition struct {
	Quantity  float64
	CostPrice float64
}

// FundPosition is a stored fund holding. HoldingAmount is the value
// snapshot the user entered at last edit; HoldingReturn is the
// cumulative P&L recorded at the same time. Cost basis is derived,
// not stored.
type FundPosition struct {
	HoldingAmount float64
	HoldingReturn float64
}

// Metrics are the derived display values for one holding.
type Metrics struct {
	MarketValue     float64
	CostValue       float64
	TotalPnL        float64
	TotalPnLPercent float64
	DailyPnL        float64
	DailyPercent    float64
}

// Equity computes metrics for a stock holding.
func Equity(pos EquityPosition, q core.Quote) Metrics {
	marketValue := pos.Quantity * q.Price
	costValue := pos.Quantity * pos.CostPrice
	totalPnL := marketValue - costValue

	var totalPct float64
	if costValue != 0 {
		totalPct = totalPnL / costValue * 100
	}

	return Metrics{
		MarketValue:     marketValue,
		CostValue:       costValue,
		TotalPnL:        totalPnL,
		TotalPnLPercent: totalPct,
		DailyPnL:        pos.Quantity * q.DailyChange,
		DailyPercent:    q.ChangePercent,
	}
}

// Fund computes metrics for an OTC fund holding.
//
// HoldingAmount is treated as yesterday's settled value, the only
// stable base available: the current value is reconstructed as
// holdingAmount * (1 + changePercent/100) and the daily P&L as
// holdingAmount * changePercent/100. Because the snapshot is never
// advanced day-over-day by the system, both drift in accuracy the
// longer a position goes unedited. That ambiguity is inherited from
// the data model; the formulas are intentionally preserved as-is.
func Fund(pos FundPosition, q core.Quote) Metrics {
	currentValue := pos.HoldingAmount * (1 + q.ChangePercent/100)
	costValue := pos.HoldingAmount - pos.HoldingReturn
	totalPnL := currentValue - costValue

	var totalPct float64
	if costValue > 0 {
		totalPct = totalPnL / costValue * 100
	}

	return Metrics{
		MarketValue:     currentValue,
		CostValue:       costValue,
		TotalPnL:        totalPnL,
		TotalPnLPercent: totalPct,
		DailyPnL:        pos.HoldingAmount * q.ChangePercent / 100,
		DailyPercent:    q.ChangePercent,
	}
}
