// Package history fetches historical price series through an ordered
// chain of sources.
//
// Tier order matters: candlestick data is authoritative and richer
// when available, so the OTC fund net-value tier only activates for
// codes that both look fund-like and came back empty from the
// equity-oriented candlestick source. Tiers run strictly sequentially;
// a later tier is a correctness fallback, not a latency hedge.
package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/core"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/logger"
	"github.com/wealthwise/marketdata/internal/metrics"
)

// Source is one tier of the fetch chain. Fetch returns the bars it
// found, or an empty slice when the upstream has nothing for the code.
type Source interface {
	Name() string
	// Supports reports whether this tier applies to the request at
	// all; unsupported tiers are skipped without a network call.
	Supports(code string, period core.Period) bool
	Fetch(ctx context.Context, code string, period core.Period, count int) ([]core.Bar, error)
}

// Service orchestrates the source chain, stopping at the first
// non-empty result.
type Service struct {
	sources []Source
	log     *zap.Logger
	metrics *metrics.Registry
}

// NewDefault wires the standard three-tier chain: intraday minute
// series, forward-adjusted candlesticks, OTC fund net value.
func NewDefault(client *httpx.Client, cfg *config.Config, log *zap.Logger, reg *metrics.Registry) *Service {
	return New([]Source{
		NewMinuteSource(client, cfg),
		NewKlineSource(client, cfg),
		NewFundNavSource(client, cfg),
	}, log, reg)
}

// New creates a history Service over the given ordered sources.
func New(sources []Source, log *zap.Logger, reg *metrics.Registry) *Service {
	return &Service{
		sources: sources,
		log:     logger.Component(log, "history"),
		metrics: reg,
	}
}

// Fetch returns up to count bars for code at the requested
// granularity. It never fails: errors are logged, the next tier is
// tried, and an exhausted chain yields an empty slice.
func (s *Service) Fetch(ctx context.Context, code string, period core.Period, count int) []core.Bar {
	if !period.IsValid() {
		s.log.Warn("unknown period", zap.String("code", code), zap.String("period", string(period)))
		return nil
	}

	for _, src := range s.sources {
		if !src.Supports(code, period) {
			continue
		}

		start := time.Now()
		bars, err := src.Fetch(ctx, code, period, count)
		elapsed := time.Since(start)

		if err != nil {
			s.log.Warn("history tier failed",
				zap.String("code", code),
				zap.String("period", string(period)),
				zap.String("source", src.Name()),
				zap.Error(err))
			s.metrics.ObserveFetch(src.Name(), metrics.OutcomeDegraded, elapsed)
			continue
		}
		if len(bars) == 0 {
			s.metrics.ObserveFetch(src.Name(), metrics.OutcomeEmpty, elapsed)
			continue
		}

		s.metrics.ObserveFetch(src.Name(), metrics.OutcomeOK, elapsed)
		if src.Name() == SourceFundNav {
			s.metrics.FundFallback()
		}
		return bars
	}

	return nil
}
