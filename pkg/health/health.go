// Package health provides health checks for a running match: whether it is
// running, whether ticks advance, whether every body is still inside the
// arena, and how much memory the process uses.
package health

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/opd-ai/go-volley/pkg/physics"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of a match.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// Healthy reports whether every check passed.
func (s HealthStatus) Healthy() bool {
	return s.Status == StatusHealthy
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Status values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: StatusHealthy,
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = ComponentHealth{
				Status:  StatusUnhealthy,
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: StatusHealthy,
			}
		}
	}

	return status
}

// MatchRunningCheck fails while the match is stopped.
type MatchRunningCheck struct {
	running func() bool
}

// NewMatchRunningCheck creates a check backed by running.
func NewMatchRunningCheck(running func() bool) *MatchRunningCheck {
	return &MatchRunningCheck{running: running}
}

// Name returns the name of this health check.
func (m *MatchRunningCheck) Name() string {
	return "match"
}

// Check verifies that the match is running.
func (m *MatchRunningCheck) Check(ctx context.Context) error {
	if !m.running() {
		return fmt.Errorf("match is not running")
	}
	return nil
}

// TickProgressCheck fails when the tick counter has not moved since the
// previous check.
type TickProgressCheck struct {
	tick func() uint64

	mu      sync.Mutex
	last    uint64
	checked bool
}

// NewTickProgressCheck creates a check backed by tick.
func NewTickProgressCheck(tick func() uint64) *TickProgressCheck {
	return &TickProgressCheck{tick: tick}
}

// Name returns the name of this health check.
func (t *TickProgressCheck) Name() string {
	return "ticks"
}

// Check verifies that ticks advanced since the last call. The first call
// only records the counter.
func (t *TickProgressCheck) Check(ctx context.Context) error {
	now := t.tick()

	t.mu.Lock()
	defer t.mu.Unlock()
	stalled := t.checked && now == t.last
	t.last, t.checked = now, true
	if stalled {
		return fmt.Errorf("tick counter stalled at %d", now)
	}
	return nil
}

// BodiesCheck fails when a body left the arena or has a non-finite position.
type BodiesCheck struct {
	arena     physics.Rect
	margin    float64
	positions func() []physics.Vector2D
}

// NewBodiesCheck creates a check that allows bodies margin units outside
// arena, e.g. a body's radius while it touches a wall.
func NewBodiesCheck(arena physics.Rect, margin float64, positions func() []physics.Vector2D) *BodiesCheck {
	return &BodiesCheck{arena: arena, margin: margin, positions: positions}
}

// Name returns the name of this health check.
func (b *BodiesCheck) Name() string {
	return "bodies"
}

// Check verifies every body position.
func (b *BodiesCheck) Check(ctx context.Context) error {
	grown := physics.Rect{
		Center: b.arena.Center,
		Width:  b.arena.Width + 2*b.margin,
		Height: b.arena.Height + 2*b.margin,
	}
	for i, p := range b.positions() {
		if !p.IsFinite() {
			return fmt.Errorf("body %d has a non-finite position", i)
		}
		if !grown.Contains(p) {
			return fmt.Errorf("body %d at (%.1f, %.1f) left the arena", i, p.X, p.Y)
		}
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go heap size.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = heapMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

func heapMB() int64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return int64(ms.HeapAlloc / (1 << 20))
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// GoroutineCheck fails once the goroutine count passes 80% of a limit.
type GoroutineCheck struct {
	maxGoroutines int64
	count         func() int64
}

// NewGoroutineCheck creates a goroutine check. A nil count reads
// runtime.NumGoroutine.
func NewGoroutineCheck(maxGoroutines int64, count func() int64) *GoroutineCheck {
	if count == nil {
		count = func() int64 { return int64(runtime.NumGoroutine()) }
	}
	return &GoroutineCheck{maxGoroutines: maxGoroutines, count: count}
}

// Name returns the name of this health check.
func (g *GoroutineCheck) Name() string {
	return "goroutines"
}

// Check verifies the goroutine count is below the warning threshold.
func (g *GoroutineCheck) Check(ctx context.Context) error {
	threshold := g.maxGoroutines * 8 / 10
	if n := g.count(); n > threshold {
		return fmt.Errorf("goroutine count %d exceeds 80%% threshold (%d/%d)", n, threshold, g.maxGoroutines)
	}
	return nil
}
