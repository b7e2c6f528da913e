package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the health status of a component or the system.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Checker probes a single dependency.
type Checker func(ctx context.Context) error

// CheckResult is the outcome of a single dependency probe.
type CheckResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ms"`
}

// Report aggregates the probe results for the whole service.
type Report struct {
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Service runs liveness and readiness checks over the registered dependencies.
type Service struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewService() *Service {
	return &Service{checkers: make(map[string]Checker)}
}

// Register adds a named dependency probe. Registering the same name twice
// replaces the previous checker.
func (s *Service) Register(name string, check Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = check
}

// Live reports process liveness. It never probes dependencies.
func (s *Service) Live() Report {
	return Report{Status: StatusHealthy, Timestamp: time.Now().UTC()}
}

// Ready probes every registered dependency concurrently. Each probe gets
// its own 5 second timeout so one stuck dependency cannot block the rest.
func (s *Service) Ready(ctx context.Context) Report {
	s.mu.RLock()
	names := make([]string, 0, len(s.checkers))
	checks := make([]Checker, 0, len(s.checkers))
	for name, check := range s.checkers {
		names = append(names, name)
		checks = append(checks, check)
	}
	s.mu.RUnlock()

	results := make([]CheckResult, len(checks))
	var wg sync.WaitGroup
	for i := range checks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			start := time.Now()
			err := checks[i](checkCtx)
			result := CheckResult{
				Name:     names[i],
				Status:   StatusHealthy,
				Duration: time.Since(start) / time.Millisecond,
			}
			if err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	report := Report{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
		Checks:    results,
	}
	healthy := 0
	for _, r := range results {
		if r.Status == StatusHealthy {
			healthy++
		}
	}
	switch {
	case len(results) == 0 || healthy == len(results):
	case healthy == 0:
		report.Status = StatusUnhealthy
	default:
		report.Status = StatusDegraded
	}
	return report
}
