// Package quote fetches normalized real-time quotes for A-share
// equities and OTC funds.
//
// The public contract is total: Get never returns an error. Transport,
// decode and shape failures are logged and collapsed into the zero
// sentinel so portfolio aggregation is never torpedoed by one
// instrument's unavailable upstream.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/logger"
	"github.com/wealthwise/marketdata/internal/market"
	"github.com/wealthwise/marketdata/internal/metrics"
)

// Tencent payload field layout (0-indexed, tilde-separated):
// 1 name, 3 current price, 31 change amount, 32 change percent.
const (
	fieldName          = 1
	fieldPrice         = 3
	fieldChangeAmount  = 31
	fieldChangePercent = 32
	minEquityFields    = 33
)

// quotedPayload extracts the string bound in `v_xx="..."` responses.
var quotedPayload = regexp.MustCompile(`="(.+)"`)

// jsonpPayload extracts the JSON object from `jsonpgz({...});`.
var jsonpPayload = regexp.MustCompile(`jsonpgz\((.*)\);`)

// Service fetches quotes from the Tencent equity endpoint and the
// Eastmoney fund valuation endpoint.
type Service struct {
	client  *httpx.Client
	cfg     config.UpstreamConfig
	headers map[string]string
	log     *zap.Logger
	metrics *metrics.Registry
}

// New creates a quote Service. The metrics registry may be nil.
func New(client *httpx.Client, cfg *config.Config, log *zap.Logger, reg *metrics.Registry) *Service {
	return &Service{
		client: client,
		cfg:    cfg.Upstream,
		// The fund valuation endpoint rejects non-browser clients.
		headers: map[string]string{
			"User-Agent": cfg.HTTP.UserAgent,
			"Referer":    cfg.HTTP.Referer,
			"Accept":     "*/*",
		},
		log:     logger.Component(log, "quote"),
		metrics: reg,
	}
}

// Get fetches the current quote for code. It never fails: on any
// upstream problem the zero sentinel (price 0, name = code) is
// returned and the cause is logged.
func (s *Service) Get(ctx context.Context, code string, typ core.AssetType) core.Quote {
	var (
		q        core.Quote
		err      error
		provider string
	)

	start := time.Now()
	if typ == core.AssetFund {
		provider = "fundgz"
		q, err = s.fetchFund(ctx, code)
	} else {
		provider = "tencent"
		q, err = s.fetchEquity(ctx, code)
	}
	elapsed := time.Since(start)

	if err != nil {
		s.log.Warn("quote degraded",
			zap.String("code", code),
			zap.String("type", string(typ)),
			zap.String("provider", provider),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		s.metrics.ObserveFetch(provider, metrics.OutcomeDegraded, elapsed)
		s.metrics.DegradedQuote(string(typ))
		return core.DegradedQuote(code)
	}

	s.metrics.ObserveFetch(provider, metrics.OutcomeOK, elapsed)
	return q
}

func (s *Service) fetchEquity(ctx context.Context, code string) (core.Quote, error) {
	url := fmt.Sprintf("%s/q=%s", s.cfg.EquityQuoteURL, market.Symbol(code))

	body, err := s.client.GetGBK(ctx, url, nil)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrUpstream, err)
	}
	return parseEquityPayload(code, body)
}

// parseEquityPayload parses the tilde-delimited assignment line the
// Tencent endpoint returns, already decoded from GBK.
func parseEquityPayload(code, body string) (core.Quote, error) {
	m := quotedPayload.FindStringSubmatch(body)
	if m == nil {
		return core.Quote{}, core.WrapError(core.ErrBadPayload,
			fmt.Errorf("no quoted payload for %s", code))
	}

	parts := strings.Split(m[1], "~")
	if len(parts) < minEquityFields {
		return core.Quote{}, core.WrapError(core.ErrBadPayload,
			fmt.Errorf("got %d fields, need %d", len(parts), minEquityFields))
	}

	price, err := strconv.ParseFloat(parts[fieldPrice], 64)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}
	change, err := strconv.ParseFloat(parts[fieldChangeAmount], 64)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}
	pct, err := strconv.ParseFloat(parts[fieldChangePercent], 64)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}

	return core.Quote{
		Name:          strings.TrimSpace(parts[fieldName]),
		Price:         price,
		ChangePercent: pct,
		DailyChange:   change,
	}, nil
}

// fundEstimate is the JSON object inside the jsonpgz wrapper. All
// numeric fields arrive as strings.
type fundEstimate struct {
	FundCode string `json:"fundcode"`
	Name     string `json:"name"`
	NetValue string `json:"dwjz"`  // previous settled net value
	Estimate string `json:"gsz"`   // estimated current value
	Growth   string `json:"gszzl"` // estimated growth rate, percent
}

func (s *Service) fetchFund(ctx context.Context, code string) (core.Quote, error) {
	url := fmt.Sprintf("%s/%s.js", s.cfg.FundEstimateURL, code)

	body, err := s.client.Get(ctx, url, s.headers)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrUpstream, err)
	}
	return parseFundPayload(code, string(body))
}

func parseFundPayload(code, body string) (core.Quote, error) {
	m := jsonpPayload.FindStringSubmatch(body)
	if m == nil || m[1] == "" {
		return core.Quote{}, core.WrapError(core.ErrBadPayload,
			fmt.Errorf("no jsonpgz wrapper for %s", code))
	}

	var est fundEstimate
	if err := json.Unmarshal([]byte(m[1]), &est); err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}

	price, err := strconv.ParseFloat(est.Estimate, 64)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}
	pct, err := strconv.ParseFloat(est.Growth, 64)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}
	prevNav, err := strconv.ParseFloat(est.NetValue, 64)
	if err != nil {
		return core.Quote{}, core.WrapError(core.ErrDecode, err)
	}

	return core.Quote{
		Name:          est.Name,
		Price:         price,
		ChangePercent: pct,
		// The endpoint reports no absolute change; derive it from the
		// settled net value and the estimated growth.
		DailyChange: prevNav * pct / 100,
	}, nil
}
