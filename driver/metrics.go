// ABOUTME: Counters for client request, cache and refresh activity
// ABOUTME: Exposed through Client.Metrics for health reporting

package driver

import "sync"

// ClientMetrics tracks request, cache and token-refresh activity.
type ClientMetrics struct {
	RequestsSent       int64 `json:"requests_sent"`
	CacheHits          int64 `json:"cache_hits"`
	CacheMisses        int64 `json:"cache_misses"`
	NetworkRetries     int64 `json:"network_retries"`
	RefreshAttempts    int64 `json:"refresh_attempts"`
	RefreshSuccesses   int64 `json:"refresh_successes"`
	RefreshFailures    int64 `json:"refresh_failures"`
	SharedRefreshWaits int64 `json:"shared_refresh_waits"`
}

type metrics struct {
	mu sync.Mutex
	m  ClientMetrics
}

func (c *metrics) add(f func(*ClientMetrics)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.m)
}

func (c *metrics) snapshot() ClientMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m
}
