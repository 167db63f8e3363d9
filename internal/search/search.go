// Package search resolves fuzzy code/name queries against the Sina
// suggest endpoint.
package search

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/logger"
	"github.com/wealthwise/marketdata/internal/metrics"
)

// maxResults caps the result set.
const maxResults = 10

// Suggest record fields, comma-separated inside each `;`-separated
// record: 0 market+type prefix, 2 code, 4 display name.
const (
	fieldMarket = 0
	fieldCode   = 2
	fieldName   = 4
)

var quotedPayload = regexp.MustCompile(`="(.+)"`)

// Service performs fuzzy instrument lookup.
type Service struct {
	client  *httpx.Client
	cfg     config.UpstreamConfig
	log     *zap.Logger
	metrics *metrics.Registry
}

// New creates a search Service. The metrics registry may be nil.
func New(client *httpx.Client, cfg *config.Config, log *zap.Logger, reg *metrics.Registry) *Service {
	return &Service{
		client:  client,
		cfg:     cfg.Upstream,
		log:     logger.Component(log, "search"),
		metrics: reg,
	}
}

// Search returns up to 10 candidate instruments for query, deduplicated
// by code with insertion order preserved. An empty query returns nil
// without a network call; any upstream failure also yields nil.
func (s *Service) Search(ctx context.Context, query string) []core.SearchResult {
	if query == "" {
		return nil
	}

	reqURL := fmt.Sprintf("%s/type=&key=%s", s.cfg.SuggestURL, url.QueryEscape(query))

	start := time.Now()
	body, err := s.client.GetGBK(ctx, reqURL, nil)
	elapsed := time.Since(start)
	if err != nil {
		s.log.Warn("suggest request failed",
			zap.String("query", query),
			zap.Error(err))
		s.metrics.ObserveFetch("suggest", metrics.OutcomeDegraded, elapsed)
		return nil
	}

	results := parseSuggestPayload(body)
	if len(results) == 0 {
		s.metrics.ObserveFetch("suggest", metrics.OutcomeEmpty, elapsed)
		return nil
	}
	s.metrics.ObserveFetch("suggest", metrics.OutcomeOK, elapsed)
	return results
}

func parseSuggestPayload(body string) []core.SearchResult {
	m := quotedPayload.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var results []core.SearchResult

	for _, record := range strings.Split(m[1], ";") {
		parts := strings.Split(record, ",")
		if len(parts) <= fieldName {
			continue
		}

		code := parts[fieldCode]
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}

		typ := core.AssetStock
		if strings.HasPrefix(parts[fieldMarket], "of") {
			typ = core.AssetFund
		}

		mk := parts[fieldMarket]
		if len(mk) > 2 {
			mk = mk[:2]
		}

		results = append(results, core.SearchResult{
			Code:   code,
			Name:   parts[fieldName],
			Type:   typ,
			Market: mk,
		})
		if len(results) == maxResults {
			break
		}
	}
	return results
}
