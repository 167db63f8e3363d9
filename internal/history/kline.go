package history

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/market"
)

// SourceKline names the candlestick tier.
const SourceKline = "kline"

// KlineSource fetches forward-adjusted candlesticks from the Tencent
// K-line endpoint. Rows are fixed-order tuples
// [date, open, close, high, low, ...].
type KlineSource struct {
	client *httpx.Client
	cfg    config.UpstreamConfig
}

// NewKlineSource creates the candlestick tier.
func NewKlineSource(client *httpx.Client, cfg *config.Config) *KlineSource {
	return &KlineSource{client: client, cfg: cfg.Upstream}
}

func (k *KlineSource) Name() string { return SourceKline }

func (k *KlineSource) Supports(code string, period core.Period) bool {
	switch period {
	case core.PeriodDay, core.PeriodWeek, core.PeriodMonth:
		return true
	}
	return false
}

func (k *KlineSource) Fetch(ctx context.Context, code string, period core.Period, count int) ([]core.Bar, error) {
	sym := market.Symbol(code)
	url := fmt.Sprintf("%s?param=%s,%s,,,%d,qfq", k.cfg.KlineURL, sym, period, count)

	body, err := k.client.Get(ctx, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrUpstream, err)
	}

	node := gjson.GetBytes(body, "data."+sym)
	if !node.Exists() {
		return nil, nil
	}

	// Adjusted series first; older payloads key the series on the bare
	// period name instead.
	var rows gjson.Result
	for _, key := range []string{"qfq" + string(period), string(period)} {
		if r := node.Get(key); r.IsArray() {
			rows = r
			break
		}
	}
	if !rows.IsArray() {
		return nil, nil
	}

	var bars []core.Bar
	for _, row := range rows.Array() {
		tuple := row.Array()
		if len(tuple) < 5 {
			continue
		}
		bars = append(bars, core.Bar{
			Date:  tuple[0].String(),
			Open:  tuple[1].Float(),
			Close: tuple[2].Float(),
			High:  tuple[3].Float(),
			Low:   tuple[4].Float(),
		})
	}
	return bars, nil
}
