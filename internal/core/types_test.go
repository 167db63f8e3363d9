package core

import "testing"

func TestDegradedQuote(t *testing.T) {
	q := DegradedQuote("600519")

	if q.Name != "600519" {
		t.Errorf("expected name to fall back to the code, got %q", q.Name)
	}
	if q.Price != 0 || q.ChangePercent != 0 || q.DailyChange != 0 {
		t.Errorf("expected zeroed fields, got %+v", q)
	}
	if !q.IsDegraded() {
		t.Error("sentinel must report degraded")
	}
}

func TestQuote_IsDegraded(t *testing.T) {
	q := Quote{Name: "贵州茅台", Price: 1700}
	if q.IsDegraded() {
		t.Error("a priced quote is not degraded")
	}
}

func TestBar_IsFlat(t *testing.T) {
	flat := Bar{Date: "2023-10-27", Open: 1.5, Close: 1.5, High: 1.5, Low: 1.5}
	if !flat.IsFlat() {
		t.Error("net-value bar should be flat")
	}

	candle := Bar{Date: "2023-10-27", Open: 1.5, Close: 1.6, High: 1.7, Low: 1.4}
	if candle.IsFlat() {
		t.Error("candle bar should not be flat")
	}
}

func TestPeriod_IsValid(t *testing.T) {
	for _, p := range []Period{PeriodMin, PeriodDay, PeriodWeek, PeriodMonth} {
		if !p.IsValid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if Period("year").IsValid() {
		t.Error("expected unknown period to be invalid")
	}
}
