package history

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/market"
)

// SourceFundNav names the OTC fund net-value tier.
const SourceFundNav = "fundnav"

// acWorthTrend extracts the cumulative net-value array embedded in the
// pingzhongdata JS file.
var acWorthTrend = regexp.MustCompile(`(?s)Data_ACWorthTrend\s*=\s*(\[.*?\]);`)

// FundNavSource fetches the valuation history of an OTC fund. Funds
// priced once daily have no traded range, so every bar is flat
// (Open == Close == High == Low); downstream rendering depends on that
// flatness to distinguish a net-value series from a candle series.
type FundNavSource struct {
	client *httpx.Client
	cfg    config.UpstreamConfig
}

// NewFundNavSource creates the fund net-value tier.
func NewFundNavSource(client *httpx.Client, cfg *config.Config) *FundNavSource {
	return &FundNavSource{client: client, cfg: cfg.Upstream}
}

func (f *FundNavSource) Name() string { return SourceFundNav }

// Supports restricts the tier to fund-looking codes and non-intraday
// periods, so genuine equities with a temporarily empty candlestick
// response rarely trigger a false fallback.
func (f *FundNavSource) Supports(code string, period core.Period) bool {
	return period != core.PeriodMin && market.IsLikelyFund(code)
}

func (f *FundNavSource) Fetch(ctx context.Context, code string, period core.Period, count int) ([]core.Bar, error) {
	url := fmt.Sprintf("%s/%s.js", f.cfg.FundNavURL, code)

	body, err := f.client.Get(ctx, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrUpstream, err)
	}

	m := acWorthTrend.FindSubmatch(body)
	if m == nil {
		return nil, nil
	}

	rows := gjson.ParseBytes(m[1]).Array()
	// Rows ascend by time; keep the most recent count entries.
	if count > 0 && len(rows) > count {
		rows = rows[len(rows)-count:]
	}

	var bars []core.Bar
	for _, row := range rows {
		tuple := row.Array()
		if len(tuple) < 2 {
			continue
		}
		nav := tuple[1].Float()
		date := time.UnixMilli(tuple[0].Int()).UTC().Format("2006-01-02")
		bars = append(bars, core.Bar{
			Date:  date,
			Open:  nav,
			Close: nav,
			High:  nav,
			Low:   nav,
		})
	}
	return bars, nil
}
