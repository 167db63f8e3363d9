package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/wealthwise/marketdata/internal/core"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Portfolio PortfolioConfig `mapstructure:"portfolio"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// HTTPConfig holds outbound client settings.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Referer   string        `mapstructure:"referer"`
}

// UpstreamConfig holds the base URLs of the market-data providers.
// Tests point these at local httptest servers.
type UpstreamConfig struct {
	EquityQuoteURL  string `mapstructure:"equity_quote_url"`
	FundEstimateURL string `mapstructure:"fund_estimate_url"`
	MinuteURL       string `mapstructure:"minute_url"`
	KlineURL        string `mapstructure:"kline_url"`
	FundNavURL      string `mapstructure:"fund_nav_url"`
	SuggestURL      string `mapstructure:"suggest_url"`
}

// PortfolioConfig holds aggregation settings.
type PortfolioConfig struct {
	// MaxConcurrent caps concurrent per-instrument fetches so an
	// aggregate refresh does not hammer the free public endpoints.
	MaxConcurrent int `mapstructure:"max_concurrent"`
}

// MetricsConfig holds metrics configuration. When enabled, the fetch
// services record upstream request counters and durations.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults. The upstream URLs
// match the free public endpoints the original providers expose; the
// 5s timeout mirrors what the fund valuation endpoint tolerates.
func Defaults() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Referer:   "http://fund.eastmoney.com/",
		},
		Upstream: UpstreamConfig{
			EquityQuoteURL:  "http://qt.gtimg.cn",
			FundEstimateURL: "http://fundgz.1234567.com.cn/js",
			MinuteURL:       "http://web.ifzq.gtimg.cn/appstock/app/minute/query",
			KlineURL:        "http://web.ifzq.gtimg.cn/appstock/app/fqkline/get",
			FundNavURL:      "http://fund.eastmoney.com/pingzhongdata",
			SuggestURL:      "http://suggest3.sinajs.cn/suggest",
		},
		Portfolio: PortfolioConfig{
			MaxConcurrent: 8,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("http timeout must be positive, got %s", c.HTTP.Timeout))
	}
	if c.Portfolio.MaxConcurrent < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_concurrent must be at least 1, got %d", c.Portfolio.MaxConcurrent))
	}

	urls := map[string]string{
		"equity_quote_url":  c.Upstream.EquityQuoteURL,
		"fund_estimate_url": c.Upstream.FundEstimateURL,
		"minute_url":        c.Upstream.MinuteURL,
		"kline_url":         c.Upstream.KlineURL,
		"fund_nav_url":      c.Upstream.FundNavURL,
		"suggest_url":       c.Upstream.SuggestURL,
	}
	for name, u := range urls {
		if u == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("upstream %s must not be empty", name))
		}
	}

	return nil
}
