package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFetch(t *testing.T) {
	r := NewRegistry()

	r.ObserveFetch("tencent", OutcomeOK, 120*time.Millisecond)
	r.ObserveFetch("tencent", OutcomeDegraded, 5*time.Second)
	r.ObserveFetch("eastmoney", OutcomeEmpty, 30*time.Millisecond)

	if got := testutil.ToFloat64(r.upstreamRequests.WithLabelValues("tencent", OutcomeOK)); got != 1 {
		t.Errorf("expected 1 ok fetch for tencent, got %v", got)
	}
	if got := testutil.ToFloat64(r.upstreamRequests.WithLabelValues("tencent", OutcomeDegraded)); got != 1 {
		t.Errorf("expected 1 degraded fetch for tencent, got %v", got)
	}
	if got := testutil.ToFloat64(r.upstreamRequests.WithLabelValues("eastmoney", OutcomeEmpty)); got != 1 {
		t.Errorf("expected 1 empty fetch for eastmoney, got %v", got)
	}
}

func TestDegradedQuote(t *testing.T) {
	r := NewRegistry()

	r.DegradedQuote("stock")
	r.DegradedQuote("stock")
	r.DegradedQuote("fund")

	if got := testutil.ToFloat64(r.degradedQuotes.WithLabelValues("stock")); got != 2 {
		t.Errorf("expected 2 degraded stock quotes, got %v", got)
	}
	if got := testutil.ToFloat64(r.degradedQuotes.WithLabelValues("fund")); got != 1 {
		t.Errorf("expected 1 degraded fund quote, got %v", got)
	}
}

func TestFundFallback(t *testing.T) {
	r := NewRegistry()

	r.FundFallback()

	if got := testutil.ToFloat64(r.historyFallbacks); got != 1 {
		t.Errorf("expected 1 fallback, got %v", got)
	}
}

func TestNilRegistry_IsSafe(t *testing.T) {
	var r *Registry
	// Metric recording is optional wiring; a nil registry must not panic.
	r.ObserveFetch("tencent", OutcomeOK, time.Millisecond)
	r.DegradedQuote("stock")
	r.FundFallback()
}
