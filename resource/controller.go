package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for index node storage.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentQueries is the maximum number of queries admitted at once
	// across all batch calls sharing the controller.
	// If 0, defaults to 1.
	MaxConcurrentQueries int64

	// QueriesPerSecond is the sustained query admission rate.
	// If 0, unlimited.
	QueriesPerSecond float64

	// QueryBurst is the number of queries admitted above the sustained rate.
	// If 0, defaults to max(1, QueriesPerSecond).
	QueryBurst int
}

// Controller manages shared resources (memory, query concurrency, query rate).
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Queries
	querySem     *semaphore.Weighted
	queryLimiter *rate.Limiter // nil if unlimited
	queries      atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentQueries <= 0 {
		cfg.MaxConcurrentQueries = 1
	}

	c := &Controller{
		cfg:      cfg,
		querySem: semaphore.NewWeighted(cfg.MaxConcurrentQueries),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.QueriesPerSecond > 0 {
		burst := cfg.QueryBurst
		if burst <= 0 {
			burst = max(1, int(cfg.QueriesPerSecond))
		}
		c.queryLimiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSecond), burst)
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireQuery waits for a rate token and a free query slot.
// Every successful call must be paired with ReleaseQuery.
func (c *Controller) AcquireQuery(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.queryLimiter != nil {
		if err := c.queryLimiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := c.querySem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.queries.Add(1)
	return nil
}

// TryAcquireQuery attempts to admit a query without blocking.
func (c *Controller) TryAcquireQuery() bool {
	if c == nil {
		return true
	}
	if c.queryLimiter != nil && !c.queryLimiter.Allow() {
		return false
	}
	if !c.querySem.TryAcquire(1) {
		return false
	}
	c.queries.Add(1)
	return true
}

// ReleaseQuery frees a query slot.
func (c *Controller) ReleaseQuery() {
	if c == nil {
		return
	}
	c.queries.Add(-1)
	c.querySem.Release(1)
}

// ActiveQueries returns the number of admitted queries not yet released.
func (c *Controller) ActiveQueries() int64 {
	if c == nil {
		return 0
	}
	return c.queries.Load()
}
