package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/market"
)

// SourceMinute names the intraday time-sharing tier.
const SourceMinute = "minute"

// MinuteSource fetches the intraday time-sharing series from the
// Tencent minute endpoint. Rows arrive as "HHmm price volume" strings;
// only Close is populated on the resulting bars since no OHLC shape
// exists intraday. OTC funds never have minute data.
type MinuteSource struct {
	client *httpx.Client
	cfg    config.UpstreamConfig
}

// NewMinuteSource creates the minute tier.
func NewMinuteSource(client *httpx.Client, cfg *config.Config) *MinuteSource {
	return &MinuteSource{client: client, cfg: cfg.Upstream}
}

func (m *MinuteSource) Name() string { return SourceMinute }

func (m *MinuteSource) Supports(code string, period core.Period) bool {
	return period == core.PeriodMin
}

func (m *MinuteSource) Fetch(ctx context.Context, code string, period core.Period, count int) ([]core.Bar, error) {
	sym := market.Symbol(code)
	url := fmt.Sprintf("%s?code=%s", m.cfg.MinuteURL, sym)

	body, err := m.client.Get(ctx, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrUpstream, err)
	}

	rows := gjson.GetBytes(body, "data."+sym+".data.data")
	if !rows.IsArray() {
		return nil, nil
	}

	var bars []core.Bar
	for _, row := range rows.Array() {
		parts := strings.Fields(row.String())
		if len(parts) < 2 {
			continue
		}
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		bars = append(bars, core.Bar{Date: parts[0], Close: price})
	}
	return bars, nil
}
