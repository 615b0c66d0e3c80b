package health

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/opd-ai/go-volley/pkg/physics"
)

// mockHealthCheck implements HealthCheck for testing
type mockHealthCheck struct {
	name    string
	healthy bool
	err     error
}

func (m *mockHealthCheck) Name() string {
	return m.name
}

func (m *mockHealthCheck) Check(ctx context.Context) error {
	if !m.healthy {
		if m.err != nil {
			return m.err
		}
		return fmt.Errorf("mock health check failed")
	}
	return nil
}

// slowHealthCheck implements HealthCheck with configurable delay for testing timeouts
type slowHealthCheck struct {
	name    string
	healthy bool
	delay   time.Duration
}

func (s *slowHealthCheck) Name() string {
	return s.name
}

func (s *slowHealthCheck) Check(ctx context.Context) error {
	select {
	case <-time.After(s.delay):
		if !s.healthy {
			return fmt.Errorf("slow health check failed")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestNewHealthChecker(t *testing.T) {
	hc := NewHealthChecker()
	if hc == nil {
		t.Fatal("NewHealthChecker() returned nil")
	}
	if hc.checks == nil {
		t.Error("checks map not initialized")
	}
}

func TestHealthChecker_AddCheck(t *testing.T) {
	hc := NewHealthChecker()

	check := &mockHealthCheck{name: "bodies", healthy: true}
	hc.AddCheck(check)

	if len(hc.checks) != 1 {
		t.Errorf("Expected 1 check, got %d", len(hc.checks))
	}

	if hc.checks["bodies"] != check {
		t.Error("Check not properly stored")
	}
}

func TestHealthChecker_RemoveCheck(t *testing.T) {
	hc := NewHealthChecker()

	check := &mockHealthCheck{name: "bodies", healthy: true}
	hc.AddCheck(check)
	hc.RemoveCheck("bodies")

	if len(hc.checks) != 0 {
		t.Errorf("Expected 0 checks after removal, got %d", len(hc.checks))
	}
}

func TestHealthChecker_CheckHealth(t *testing.T) {
	tests := []struct {
		name     string
		checks   []*mockHealthCheck
		expected string
	}{
		{
			name:     "no checks - healthy",
			checks:   []*mockHealthCheck{},
			expected: StatusHealthy,
		},
		{
			name: "all healthy",
			checks: []*mockHealthCheck{
				{name: "match", healthy: true},
				{name: "ticks", healthy: true},
			},
			expected: StatusHealthy,
		},
		{
			name: "one unhealthy",
			checks: []*mockHealthCheck{
				{name: "match", healthy: true},
				{name: "ticks", healthy: false},
			},
			expected: StatusUnhealthy,
		},
		{
			name: "all unhealthy",
			checks: []*mockHealthCheck{
				{name: "match", healthy: false},
				{name: "ticks", healthy: false},
			},
			expected: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()

			for _, check := range tt.checks {
				hc.AddCheck(check)
			}

			ctx := context.Background()
			status := hc.CheckHealth(ctx)

			if status.Status != tt.expected {
				t.Errorf("Expected status %s, got %s", tt.expected, status.Status)
			}

			if len(status.Checks) != len(tt.checks) {
				t.Errorf("Expected %d check results, got %d", len(tt.checks), len(status.Checks))
			}

			for _, check := range tt.checks {
				result, exists := status.Checks[check.name]
				if !exists {
					t.Errorf("Check result for %s not found", check.name)
					continue
				}

				expectedStatus := StatusHealthy
				if !check.healthy {
					expectedStatus = StatusUnhealthy
				}

				if result.Status != expectedStatus {
					t.Errorf("Check %s: expected status %s, got %s", check.name, expectedStatus, result.Status)
				}
			}
		})
	}
}

func TestHealthChecker_CheckHealthWithTimeout(t *testing.T) {
	hc := NewHealthChecker()

	// Create a slow check that respects context timeout
	slowCheck := &slowHealthCheck{
		name:    "slow",
		healthy: true,
		delay:   100 * time.Millisecond,
	}

	hc.AddCheck(slowCheck)

	// Create context with short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	status := hc.CheckHealth(ctx)

	// The check should fail due to timeout
	if status.Status != StatusUnhealthy {
		t.Errorf("Expected unhealthy status due to timeout, got %s", status.Status)
	}

	result, exists := status.Checks["slow"]
	if !exists {
		t.Fatal("Slow check result not found")
	}

	if result.Status != StatusUnhealthy {
		t.Errorf("Expected unhealthy status for slow check, got %s", result.Status)
	}
}

func TestMemoryHealthCheck(t *testing.T) {
	tests := []struct {
		name         string
		maxMemoryMB  int64
		currentMemMB int64
		expectError  bool
	}{
		{
			name:         "memory usage within limit",
			maxMemoryMB:  100,
			currentMemMB: 50,
			expectError:  false,
		},
		{
			name:         "memory usage at limit",
			maxMemoryMB:  100,
			currentMemMB: 100,
			expectError:  false,
		},
		{
			name:         "memory usage exceeds limit",
			maxMemoryMB:  100,
			currentMemMB: 150,
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewMemoryHealthCheck(tt.maxMemoryMB, func() int64 {
				return tt.currentMemMB
			})

			if check.Name() != "memory" {
				t.Errorf("Expected name 'memory', got %s", check.Name())
			}

			err := check.Check(context.Background())

			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

// Benchmark tests for performance validation
func BenchmarkHealthChecker_CheckHealth(b *testing.B) {
	hc := NewHealthChecker()

	// Add multiple health checks
	for i := 0; i < 10; i++ {
		check := &mockHealthCheck{
			name:    fmt.Sprintf("check%d", i),
			healthy: true,
		}
		hc.AddCheck(check)
	}

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hc.CheckHealth(ctx)
	}
}

func TestMatchRunningCheck(t *testing.T) {
	running := false
	check := NewMatchRunningCheck(func() bool { return running })

	if check.Name() != "match" {
		t.Errorf("Expected name 'match', got %s", check.Name())
	}
	if err := check.Check(context.Background()); err == nil {
		t.Error("Expected error for stopped match")
	}

	running = true
	if err := check.Check(context.Background()); err != nil {
		t.Errorf("Expected no error for running match, got: %v", err)
	}
}

func TestTickProgressCheck(t *testing.T) {
	var tick uint64 = 10
	check := NewTickProgressCheck(func() uint64 { return tick })
	ctx := context.Background()

	if err := check.Check(ctx); err != nil {
		t.Fatalf("First check should only record, got: %v", err)
	}
	if err := check.Check(ctx); err == nil {
		t.Error("Expected stalled error when tick did not move")
	}

	tick = 11
	if err := check.Check(ctx); err != nil {
		t.Errorf("Expected no error after progress, got: %v", err)
	}
}

func TestBodiesCheck(t *testing.T) {
	arena := physics.RectFromOrigin(1600, 900)

	tests := []struct {
		name        string
		positions   []physics.Vector2D
		expectError bool
	}{
		{
			name:      "all inside",
			positions: []physics.Vector2D{{X: 200, Y: 845}, {X: 800, Y: 450}},
		},
		{
			name:      "touching wall within margin",
			positions: []physics.Vector2D{{X: -20, Y: 845}},
		},
		{
			name:        "escaped",
			positions:   []physics.Vector2D{{X: 800, Y: 1200}},
			expectError: true,
		},
		{
			name:        "nan",
			positions:   []physics.Vector2D{{X: math.NaN(), Y: 450}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewBodiesCheck(arena, 55, func() []physics.Vector2D { return tt.positions })
			if check.Name() != "bodies" {
				t.Errorf("Expected name 'bodies', got %s", check.Name())
			}

			err := check.Check(context.Background())
			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestMemoryHealthCheck_DefaultReader(t *testing.T) {
	check := NewMemoryHealthCheck(1<<20, nil)
	if err := check.Check(context.Background()); err != nil {
		t.Errorf("Expected heap to be under the limit, got: %v", err)
	}
}

func TestHealthStatus_Healthy(t *testing.T) {
	if !(HealthStatus{Status: StatusHealthy}).Healthy() {
		t.Error("Expected healthy status to report Healthy")
	}
	if (HealthStatus{Status: StatusUnhealthy}).Healthy() {
		t.Error("Expected unhealthy status not to report Healthy")
	}
}

func TestGoroutineCheck(t *testing.T) {
	tests := []struct {
		name        string
		count       int64
		expectError bool
	}{
		{name: "well_below", count: 10},
		{name: "at_threshold", count: 80},
		{name: "above_threshold", count: 81, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewGoroutineCheck(100, func() int64 { return tt.count })
			if check.Name() != "goroutines" {
				t.Errorf("Name() = %q, expected %q", check.Name(), "goroutines")
			}
			err := check.Check(context.Background())
			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestGoroutineCheck_DefaultCounter(t *testing.T) {
	if err := NewGoroutineCheck(1<<20, nil).Check(context.Background()); err != nil {
		t.Errorf("Check() = %v, expected nil", err)
	}
}
