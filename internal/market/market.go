// Package market maps A-share instrument codes to exchange prefixes.
//
// The mapping is a heuristic over 6-digit numeric codes, not
// authoritative exchange metadata; callers must tolerate
// misclassification for edge-case codes.
package market

import "regexp"

// Exchange prefixes as used by the Tencent and Sina quote endpoints.
const (
	PrefixShanghai = "sh"
	PrefixShenzhen = "sz"
	PrefixBeijing  = "bj"

	// DefaultPrefix is the degraded-mode fallback for codes no rule
	// matches.
	DefaultPrefix = PrefixShanghai
)

// sixDigits matches codes that look like an OTC fund. Stocks are also
// six digits, so this is only meaningful after an equity-oriented
// source came back empty.
var sixDigits = regexp.MustCompile(`^\d{6}$`)

// Prefix resolves the exchange prefix for an instrument code.
//   - 6xxxxx  Shanghai main board
//   - 0xxxxx, 3xxxxx  Shenzhen
//   - 4xxxxx, 8xxxxx  Beijing exchange
//   - 5xxxxx  Shanghai-listed fund/ETF
//   - 1xxxxx  Shenzhen-listed fund/ETF (15/16)
//
// Anything else falls back to DefaultPrefix. There is no error path.
func Prefix(code string) string {
	if code == "" {
		return DefaultPrefix
	}
	switch code[0] {
	case '6':
		return PrefixShanghai
	case '0', '3':
		return PrefixShenzhen
	case '4', '8':
		return PrefixBeijing
	case '5':
		return PrefixShanghai
	case '1':
		return PrefixShenzhen
	}
	return DefaultPrefix
}

// Symbol builds the prefixed symbol the upstream endpoints key on,
// e.g. "600519" -> "sh600519".
func Symbol(code string) string {
	return Prefix(code) + code
}

// IsLikelyFund reports whether a code could be an OTC fund. Kept as a
// named predicate so it can be swapped for authoritative instrument
// metadata without touching the fetch orchestration.
func IsLikelyFund(code string) bool {
	return sixDigits.MatchString(code)
}
