package health

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Status values reported by probes.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// DefaultCheckTimeout bounds a single readiness check.
const DefaultCheckTimeout = 2 * time.Second

// ErrCheckTimeout is reported when a check does not return in time.
var ErrCheckTimeout = errors.New("health check timeout")

// CheckFunc reports whether one component can serve traffic.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Status   string  `json:"status"`
	Message  string  `json:"message,omitempty"`
	Duration float64 `json:"duration_ms"`
}

// Report is the body of a probe response.
type Report struct {
	Status    string                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Checker runs named readiness checks.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
	now     func() time.Time
}

// New creates a Checker. A zero timeout uses DefaultCheckTimeout.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Checker{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
		now:     time.Now,
	}
}

// Register adds or replaces the check for name.
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Names returns the registered check names in sorted order.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Liveness reports that the process is up.
func (c *Checker) Liveness() Report {
	return Report{Status: StatusOK, Timestamp: c.now().Unix()}
}

// Readiness runs every registered check concurrently. The report is degraded
// when any check fails.
func (c *Checker) Readiness(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()
			res := c.run(ctx, check)
			mu.Lock()
			results[name] = res
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()

	status := StatusReady
	for _, res := range results {
		if res.Status != StatusOK {
			status = StatusDegraded
			break
		}
	}
	return Report{Status: status, Checks: results, Timestamp: c.now().Unix()}
}

func (c *Checker) run(ctx context.Context, check CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	errCh := make(chan error, 1)
	go func() { errCh <- check(ctx) }()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		err = ErrCheckTimeout
	}

	res := CheckResult{
		Status:   StatusOK,
		Duration: float64(time.Since(start).Microseconds()) / 1000,
	}
	if err != nil {
		res.Status = StatusUnhealthy
		res.Message = err.Error()
	}
	return res
}
