// internal/workers/advisory/price-prediction/config.go
package priceprediction

import (
	"time"

	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/workers/advisory"
)

type Config struct {
	Timeout  time.Duration
	Window   time.Duration
	CacheTTL time.Duration
}

func LoadConfig(wc config.WorkerConfig, ac config.AdvisoryConfig) *Config {
	window := 30
	if ac.PriceWindow > 0 {
		window = ac.PriceWindow
	}
	return &Config{
		Timeout:  advisory.Timeout(wc, 5*time.Second),
		Window:   time.Duration(window) * 24 * time.Hour,
		CacheTTL: 15 * time.Minute,
	}
}
