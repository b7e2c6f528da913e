package health

import (
	"context"
	"errors"
	"testing"
)

func TestLive(t *testing.T) {
	s := NewService()
	report := s.Live()
	if report.Status != StatusHealthy {
		t.Errorf("live status = %s, want healthy", report.Status)
	}
	if len(report.Checks) != 0 {
		t.Error("liveness must not probe dependencies")
	}
}

func TestReady_AllHealthy(t *testing.T) {
	s := NewService()
	s.Register("cache", func(ctx context.Context) error { return nil })
	s.Register("llm", func(ctx context.Context) error { return nil })

	report := s.Ready(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("status = %s, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(report.Checks))
	}
	for _, c := range report.Checks {
		if c.Status != StatusHealthy {
			t.Errorf("check %s = %s, want healthy", c.Name, c.Status)
		}
	}
}

func TestReady_Degraded(t *testing.T) {
	s := NewService()
	s.Register("cache", func(ctx context.Context) error { return nil })
	s.Register("llm", func(ctx context.Context) error { return errors.New("connection refused") })

	report := s.Ready(context.Background())
	if report.Status != StatusDegraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}

	for _, c := range report.Checks {
		if c.Name == "llm" {
			if c.Status != StatusUnhealthy {
				t.Errorf("llm check = %s, want unhealthy", c.Status)
			}
			if c.Error != "connection refused" {
				t.Errorf("llm error = %q", c.Error)
			}
		}
	}
}

func TestReady_AllUnhealthy(t *testing.T) {
	s := NewService()
	s.Register("cache", func(ctx context.Context) error { return errors.New("down") })

	report := s.Ready(context.Background())
	if report.Status != StatusUnhealthy {
		t.Errorf("status = %s, want unhealthy", report.Status)
	}
}

func TestReady_NoCheckers(t *testing.T) {
	s := NewService()
	report := s.Ready(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("status with no checkers = %s, want healthy", report.Status)
	}
}

func TestRegister_Replaces(t *testing.T) {
	s := NewService()
	s.Register("cache", func(ctx context.Context) error { return errors.New("down") })
	s.Register("cache", func(ctx context.Context) error { return nil })

	report := s.Ready(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("replaced checker should win, status = %s", report.Status)
	}
	if len(report.Checks) != 1 {
		t.Errorf("expected 1 check, got %d", len(report.Checks))
	}
}
