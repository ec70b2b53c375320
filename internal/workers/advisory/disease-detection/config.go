// internal/workers/advisory/disease-detection/config.go
package diseasedetection

import (
	"time"

	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/workers/advisory"
)

type Config struct {
	Timeout      time.Duration
	MaxImageSize int
	ModelVersion string
}

func LoadConfig(wc config.WorkerConfig) *Config {
	return &Config{
		Timeout:      advisory.Timeout(wc, 10*time.Second),
		MaxImageSize: 10 << 20,
		ModelVersion: "1.0.0",
	}
}
