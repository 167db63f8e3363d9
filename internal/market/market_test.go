package market

import "testing"

func TestPrefix(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"600519", "sh"}, // Shanghai main board
		{"601318", "sh"},
		{"000001", "sz"}, // Shenzhen main board
		{"300750", "sz"}, // ChiNext
		{"430047", "bj"}, // Beijing exchange
		{"830799", "bj"},
		{"510300", "sh"}, // Shanghai ETF
		{"588000", "sh"},
		{"159915", "sz"}, // Shenzhen ETF
		{"161725", "sz"}, // LOF
		{"900901", "sh"}, // unmatched leading digit -> default
		{"", "sh"},       // empty -> default
	}

	for _, tc := range tests {
		got := Prefix(tc.code)
		if got != tc.expected {
			t.Errorf("Prefix(%q) = %s, want %s", tc.code, got, tc.expected)
		}
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"600519", "sh600519"},
		{"000001", "sz000001"},
		{"830799", "bj830799"},
	}

	for _, tc := range tests {
		got := Symbol(tc.code)
		if got != tc.expected {
			t.Errorf("Symbol(%q) = %s, want %s", tc.code, got, tc.expected)
		}
	}
}

func TestIsLikelyFund(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"001186", true},
		{"600519", true}, // stocks are six digits too
		{"00700", false},
		{"AAPL", false},
		{"6005190", false},
		{"", false},
	}

	for _, tc := range tests {
		got := IsLikelyFund(tc.code)
		if got != tc.expected {
			t.Errorf("IsLikelyFund(%q) = %v, want %v", tc.code, got, tc.expected)
		}
	}
}
