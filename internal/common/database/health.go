package database

import (
	"context"
	"time"
)

// Pinger is any backend the health endpoint can probe.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every backend with a shared timeout and returns "ok" or the
// error text per backend name.
func CheckAll(ctx context.Context, timeout time.Duration, backends ...Pinger) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status := make(map[string]string, len(backends))
	healthy := true
	for _, b := range backends {
		if err := b.Ping(ctx); err != nil {
			status[b.Name()] = err.Error()
			healthy = false
			continue
		}
		status[b.Name()] = "ok"
	}
	return status, healthy
}
