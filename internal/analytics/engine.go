// Package analytics computes the admin dashboard reports from the metric repository.
package analytics

import (
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
)

// Config holds report defaults and bounds.
type Config struct {
	TrendMonths    int `mapstructure:"trend_months"`
	TopStoresLimit int `mapstructure:"top_stores_limit"`
	// MaxTrendMonths bounds the months accepted by the HTTP API. The engine
	// itself serves any positive window.
	MaxTrendMonths    int           `mapstructure:"max_trend_months"`
	MaxTopStoresLimit int           `mapstructure:"max_top_stores_limit"`
	ReportTimeout     time.Duration `mapstructure:"report_timeout"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		TrendMonths:       6,
		TopStoresLimit:    10,
		MaxTrendMonths:    36,
		MaxTopStoresLimit: 100,
		ReportTimeout:     10 * time.Second,
	}
}

// Engine implements dependency.Dashboard. It holds no state between calls.
type Engine struct {
	metrics dependency.Metrics
	c       *Config
	now     func() time.Time
}

var _ dependency.Dashboard = (*Engine)(nil)

// New creates a new report engine.
func New(c *Config, metrics dependency.Metrics) *Engine {
	dc := DefaultConfig()
	if c == nil {
		c = &dc
	}
	if c.TrendMonths <= 0 {
		c.TrendMonths = dc.TrendMonths
	}
	if c.TopStoresLimit <= 0 {
		c.TopStoresLimit = dc.TopStoresLimit
	}
	if c.MaxTrendMonths < c.TrendMonths {
		c.MaxTrendMonths = max(dc.MaxTrendMonths, c.TrendMonths)
	}
	if c.MaxTopStoresLimit < c.TopStoresLimit {
		c.MaxTopStoresLimit = max(dc.MaxTopStoresLimit, c.TopStoresLimit)
	}
	return &Engine{
		metrics: metrics,
		c:       c,
		now:     time.Now,
	}
}

func clamp(v, def, upper int) int {
	if v <= 0 {
		return def
	}
	return min(v, upper)
}

func (e *Engine) trendMonths(months int) int {
	if months <= 0 {
		return e.c.TrendMonths
	}
	return months
}

func (e *Engine) topStoresLimit(limit int) int {
	return clamp(limit, e.c.TopStoresLimit, e.c.MaxTopStoresLimit)
}
