package whatsapp

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
)

type providerFunc func(ctx context.Context, to, body string) error

func (f providerFunc) SendMessage(ctx context.Context, to, body string) error {
	return f(ctx, to, body)
}

var testContacts = map[string]string{
	"Mom": "+919999999999",
	"dad": "+919999999998",
}

func TestSendLocation(t *testing.T) {
	var gotTo, gotBody string
	provider := providerFunc(func(ctx context.Context, to, body string) error {
		gotTo, gotBody = to, body
		return nil
	})
	svc := NewService(provider, testContacts, zap.NewNop())

	err := svc.SendLocation(context.Background(), "mom", domain.Coordinate{Lat: 12.9716, Lng: 77.5946})
	if err != nil {
		t.Fatalf("SendLocation failed: %v", err)
	}

	if gotTo != "+919999999999" {
		t.Errorf("sent to %q, want the saved number", gotTo)
	}
	want := "Hi! Here is my current location from TerraTalk:\nhttps://www.google.com/maps?q=12.9716,77.5946"
	if gotBody != want {
		t.Errorf("body = %q, want %q", gotBody, want)
	}
}

func TestSendLocation_ContactCaseInsensitive(t *testing.T) {
	calls := 0
	provider := providerFunc(func(ctx context.Context, to, body string) error {
		calls++
		return nil
	})
	svc := NewService(provider, testContacts, zap.NewNop())

	for _, name := range []string{"MOM", "Mom", "mom", "DAD"} {
		if err := svc.SendLocation(context.Background(), name, domain.Coordinate{}); err != nil {
			t.Errorf("SendLocation(%q) failed: %v", name, err)
		}
	}
	if calls != 4 {
		t.Errorf("expected 4 provider calls, got %d", calls)
	}
}

func TestSendLocation_UnknownContact(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, to, body string) error {
		t.Error("provider must not be called for unknown contacts")
		return nil
	})
	svc := NewService(provider, testContacts, zap.NewNop())

	err := svc.SendLocation(context.Background(), "stranger", domain.Coordinate{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSendLocation_ProviderError(t *testing.T) {
	sendErr := errors.New("twilio error: too many requests (code: 429)")
	provider := providerFunc(func(ctx context.Context, to, body string) error {
		return sendErr
	})
	svc := NewService(provider, testContacts, zap.NewNop())

	err := svc.SendLocation(context.Background(), "dad", domain.Coordinate{})
	if !errors.Is(err, sendErr) {
		t.Errorf("expected provider error to propagate, got %v", err)
	}
}
