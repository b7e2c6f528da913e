package interpreter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestInterpret_ValidOutput(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return `{"command":"zoom","action":"in"}`, nil
	})
	svc := NewService(gen, zap.NewNop())

	in := svc.Interpret(context.Background(), "zoom in")
	if in.Command != domain.CommandZoom {
		t.Fatalf("expected zoom, got %s", in.Command)
	}
	if in.Action != "in" {
		t.Errorf("expected action 'in', got '%s'", in.Action)
	}
}

func TestInterpret_OutputWrappedInProse(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "Sure! Here is the command:\n```json\n{\"command\":\"pan\",\"direction\":\"north\"}\n```", nil
	})
	svc := NewService(gen, zap.NewNop())

	in := svc.Interpret(context.Background(), "move the map up")
	if in.Command != domain.CommandPan {
		t.Fatalf("expected pan, got %s", in.Command)
	}
	if in.Direction != "north" {
		t.Errorf("expected direction 'north', got '%s'", in.Direction)
	}
}

func TestInterpret_GeneratorError(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("connection refused")
	})
	svc := NewService(gen, zap.NewNop())

	in := svc.Interpret(context.Background(), "navigate to Paris")
	if in.Command != domain.CommandError {
		t.Fatalf("expected error intent, got %s", in.Command)
	}
}

func TestInterpret_NoJSONInOutput(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "I am not sure what you mean.", nil
	})
	svc := NewService(gen, zap.NewNop())

	in := svc.Interpret(context.Background(), "mumble")
	if in.Command != domain.CommandError {
		t.Fatalf("expected error intent, got %s", in.Command)
	}
}

func TestInterpret_PromptCarriesTranscript(t *testing.T) {
	var seen string
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return `{"command":"unknown"}`, nil
	})
	svc := NewService(gen, zap.NewNop())

	svc.Interpret(context.Background(), "take me to the airport")
	if !strings.Contains(seen, "take me to the airport") {
		t.Error("prompt should contain the transcript")
	}
	if !strings.HasSuffix(seen, "\nJSON:") {
		t.Error("prompt should end with the JSON cue")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"leading prose", `sure: {"a":1} done`, `{"a":1}`, true},
		{"nested objects", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"braces in strings", `{"msg":"use { and } freely"}`, `{"msg":"use { and } freely"}`, true},
		{"escaped quotes", `{"msg":"say \"hi\" {now}"}`, `{"msg":"say \"hi\" {now}"}`, true},
		{"first of two objects", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"unbalanced", `{"a":1`, "", false},
		{"no object", "nothing here", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := extractJSON(c.in)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}
