// Package portfolio aggregates quotes and history across a set of
// holdings: dashboard totals, per-day calendar P&L and the asset value
// trend.
//
// Aggregation inherits the fetch layer's degrade-only contract: a
// holding whose upstream is unavailable contributes zero, it never
// aborts the aggregate.
package portfolio

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/logger"
	"github.com/wealthwise/marketdata/internal/pnl"
)

// QuoteGetter is the slice of the quote service the aggregator needs.
type QuoteGetter interface {
	Get(ctx context.Context, code string, typ core.AssetType) core.Quote
}

// HistoryGetter is the slice of the history service the aggregator
// needs.
type HistoryGetter interface {
	Fetch(ctx context.Context, code string, period core.Period, count int) []core.Bar
}

// StockHolding pairs an instrument code with its stored position.
type StockHolding struct {
	Code     string
	Position pnl.EquityPosition
}

// FundHolding pairs a fund code with its stored position.
type FundHolding struct {
	Code     string
	Position pnl.FundPosition
}

// Summary holds portfolio-wide totals.
type Summary struct {
	TotalAsset      float64
	DailyPnL        float64
	TotalPnL        float64
	TotalPnLPercent float64
}

// DatedValue is one point of a per-date aggregate series.
type DatedValue struct {
	Date  string
	Value float64
}

// Service aggregates market data over holdings.
type Service struct {
	quotes  QuoteGetter
	history HistoryGetter
	log     *zap.Logger

	// maxConcurrent caps the quote fan-out so a large portfolio does
	// not overwhelm the free public endpoints.
	maxConcurrent int
}

// New creates a portfolio Service.
func New(quotes QuoteGetter, history HistoryGetter, maxConcurrent int, log *zap.Logger) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		quotes:        quotes,
		history:       history,
		log:           logger.Component(log, "portfolio"),
		maxConcurrent: maxConcurrent,
	}
}

// Dashboard computes portfolio totals across all holdings. Quote
// fetches are independent and fan out concurrently up to the
// configured cap; cancelling ctx cancels the in-flight fetches, whose
// holdings then contribute degraded (zero) quotes.
func (s *Service) Dashboard(ctx context.Context, stocks []StockHolding, funds []FundHolding) Summary {
	reqID := uuid.NewString()
	s.log.Debug("dashboard refresh",
		zap.String("request_id", reqID),
		zap.Int("stocks", len(stocks)),
		zap.Int("funds", len(funds)))

	stockQuotes := make([]core.Quote, len(stocks))
	fundQuotes := make([]core.Quote, len(funds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, h := range stocks {
		g.Go(func() error {
			stockQuotes[i] = s.quotes.Get(gctx, h.Code, core.AssetStock)
			return nil
		})
	}
	for i, h := range funds {
		g.Go(func() error {
			fundQuotes[i] = s.quotes.Get(gctx, h.Code, core.AssetFund)
			return nil
		})
	}
	// Fetches never error; Wait only joins the goroutines.
	_ = g.Wait()

	var sum Summary
	var cost float64
	for i, h := range stocks {
		m := pnl.Equity(h.Position, stockQuotes[i])
		sum.TotalAsset += m.MarketValue
		sum.DailyPnL += m.DailyPnL
		sum.TotalPnL += m.TotalPnL
		cost += m.CostValue
	}
	for i, h := range funds {
		m := pnl.Fund(h.Position, fundQuotes[i])
		sum.TotalAsset += m.MarketValue
		sum.DailyPnL += m.DailyPnL
		sum.TotalPnL += m.TotalPnL
		cost += m.CostValue
	}
	if cost > 0 {
		sum.TotalPnLPercent = sum.TotalPnL / cost * 100
	}

	s.log.Debug("dashboard done",
		zap.String("request_id", reqID),
		zap.Float64("total_asset", sum.TotalAsset))
	return sum
}

// CalendarPnL computes realized daily P&L per calendar date from the
// daily close series of each equity holding: for consecutive bars,
// (close[i] - close[i-1]) * quantity, merged across holdings. Dates
// ascend; values are rounded to cents.
func (s *Service) CalendarPnL(ctx context.Context, stocks []StockHolding, days int) []DatedValue {
	byDate := make(map[string]float64)

	for _, h := range stocks {
		bars := s.history.Fetch(ctx, h.Code, core.PeriodDay, days)
		for i := 1; i < len(bars); i++ {
			change := bars[i].Close - bars[i-1].Close
			byDate[bars[i].Date] += change * h.Position.Quantity
		}
	}

	return sortedValues(byDate)
}

// AssetTrend computes the portfolio value per calendar date: equity
// market value from daily closes plus the summed fund holding
// snapshots. Fund values have no usable daily history base here, so
// they contribute a constant.
func (s *Service) AssetTrend(ctx context.Context, stocks []StockHolding, funds []FundHolding, days int) []DatedValue {
	byDate := make(map[string]float64)

	for _, h := range stocks {
		bars := s.history.Fetch(ctx, h.Code, core.PeriodDay, days)
		for _, b := range bars {
			byDate[b.Date] += b.Close * h.Position.Quantity
		}
	}

	var fundTotal float64
	for _, h := range funds {
		fundTotal += h.Position.HoldingAmount
	}
	for date := range byDate {
		byDate[date] += fundTotal
	}

	return sortedValues(byDate)
}

func sortedValues(byDate map[string]float64) []DatedValue {
	out := make([]DatedValue, 0, len(byDate))
	for date, v := range byDate {
		out = append(out, DatedValue{Date: date, Value: math.Round(v*100) / 100})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
