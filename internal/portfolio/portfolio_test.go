package portfolio

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/pnl"
)

type stubQuotes struct {
	mu     sync.Mutex
	quotes map[string]core.Quote

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (s *stubQuotes) Get(ctx context.Context, code string, typ core.AssetType) core.Quote {
	cur := s.inFlight.Add(1)
	for {
		prev := s.maxInFlight.Load()
		if cur <= prev || s.maxInFlight.CompareAndSwap(prev, cur) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.inFlight.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.quotes[code]; ok {
		return q
	}
	return core.DegradedQuote(code)
}

type stubHistory struct {
	bars map[string][]core.Bar
}

func (s *stubHistory) Fetch(ctx context.Context, code string, period core.Period, count int) []core.Bar {
	return s.bars[code]
}

func TestDashboard(t *testing.T) {
	quotes := &stubQuotes{quotes: map[string]core.Quote{
		"600519": {Name: "贵州茅台", Price: 12, ChangePercent: 4.35, DailyChange: 0.5},
		"001186": {Name: "富国文体", Price: 2.135, ChangePercent: 1.0, DailyChange: 0.021},
	}}
	s := New(quotes, &stubHistory{}, 4, nil)

	sum := s.Dashboard(context.Background(),
		[]StockHolding{{Code: "600519", Position: pnl.EquityPosition{Quantity: 100, CostPrice: 10}}},
		[]FundHolding{{Code: "001186", Position: pnl.FundPosition{HoldingAmount: 10000, HoldingReturn: 500}}},
	)

	assert.InDelta(t, 11300.0, sum.TotalAsset, 1e-9)
	assert.InDelta(t, 150.0, sum.DailyPnL, 1e-9)
	assert.InDelta(t, 800.0, sum.TotalPnL, 1e-9)
	assert.InDelta(t, 800.0/10500.0*100, sum.TotalPnLPercent, 1e-9)
}

func TestDashboard_DegradedHoldingDoesNotAbort(t *testing.T) {
	quotes := &stubQuotes{quotes: map[string]core.Quote{
		"600519": {Name: "贵州茅台", Price: 12, DailyChange: 0.5},
		// 000001 missing: degraded
	}}
	s := New(quotes, &stubHistory{}, 4, nil)

	sum := s.Dashboard(context.Background(),
		[]StockHolding{
			{Code: "600519", Position: pnl.EquityPosition{Quantity: 100, CostPrice: 10}},
			{Code: "000001", Position: pnl.EquityPosition{Quantity: 200, CostPrice: 11}},
		},
		nil,
	)

	// The degraded holding contributes zero market value but its cost
	// still counts against total P&L.
	assert.InDelta(t, 1200.0, sum.TotalAsset, 1e-9)
	assert.InDelta(t, 200.0-2200.0, sum.TotalPnL, 1e-9)
}

func TestDashboard_Empty(t *testing.T) {
	s := New(&stubQuotes{}, &stubHistory{}, 4, nil)
	sum := s.Dashboard(context.Background(), nil, nil)

	assert.Zero(t, sum.TotalAsset)
	assert.Zero(t, sum.TotalPnLPercent)
}

func TestDashboard_ConcurrencyCapped(t *testing.T) {
	quotes := &stubQuotes{quotes: map[string]core.Quote{}, delay: 20 * time.Millisecond}
	s := New(quotes, &stubHistory{}, 3, nil)

	stocks := make([]StockHolding, 12)
	for i := range stocks {
		stocks[i] = StockHolding{Code: "600519", Position: pnl.EquityPosition{Quantity: 1, CostPrice: 1}}
	}
	s.Dashboard(context.Background(), stocks, nil)

	assert.LessOrEqual(t, quotes.maxInFlight.Load(), int32(3),
		"quote fan-out must respect the concurrency cap")
}

func TestCalendarPnL(t *testing.T) {
	history := &stubHistory{bars: map[string][]core.Bar{
		"600519": {
			{Date: "2023-10-26", Close: 100},
			{Date: "2023-10-27", Close: 102},
			{Date: "2023-10-30", Close: 101},
		},
		"000001": {
			{Date: "2023-10-27", Close: 11},
			{Date: "2023-10-30", Close: 12},
		},
	}}
	s := New(&stubQuotes{}, history, 4, nil)

	got := s.CalendarPnL(context.Background(),
		[]StockHolding{
			{Code: "600519", Position: pnl.EquityPosition{Quantity: 10}},
			{Code: "000001", Position: pnl.EquityPosition{Quantity: 100}},
		}, 40)

	require.Len(t, got, 2)
	// 2023-10-27: (102-100)*10 = 20
	assert.Equal(t, DatedValue{Date: "2023-10-27", Value: 20}, got[0])
	// 2023-10-30: (101-102)*10 + (12-11)*100 = 90
	assert.Equal(t, DatedValue{Date: "2023-10-30", Value: 90}, got[1])
}

func TestCalendarPnL_NoHistory(t *testing.T) {
	s := New(&stubQuotes{}, &stubHistory{}, 4, nil)
	got := s.CalendarPnL(context.Background(),
		[]StockHolding{{Code: "600519", Position: pnl.EquityPosition{Quantity: 10}}}, 40)
	assert.Empty(t, got)
}

func TestAssetTrend(t *testing.T) {
	history := &stubHistory{bars: map[string][]core.Bar{
		"600519": {
			{Date: "2023-10-27", Close: 100},
			{Date: "2023-10-30", Close: 101},
		},
	}}
	s := New(&stubQuotes{}, history, 4, nil)

	got := s.AssetTrend(context.Background(),
		[]StockHolding{{Code: "600519", Position: pnl.EquityPosition{Quantity: 10}}},
		[]FundHolding{{Code: "001186", Position: pnl.FundPosition{HoldingAmount: 5000}}},
		30)

	require.Len(t, got, 2)
	assert.Equal(t, DatedValue{Date: "2023-10-27", Value: 6000}, got[0])
	assert.Equal(t, DatedValue{Date: "2023-10-30", Value: 6010}, got[1])
}
