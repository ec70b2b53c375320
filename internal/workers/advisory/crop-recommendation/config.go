// internal/workers/advisory/crop-recommendation/config.go
package croprecommendation

import (
	"time"

	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/workers/advisory"
)

type Config struct {
	Timeout time.Duration
	TopN    int
}

func LoadConfig(wc config.WorkerConfig) *Config {
	return &Config{
		Timeout: advisory.Timeout(wc, 5*time.Second),
		TopN:    3,
	}
}
