package interpreter

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
)

// Generator produces one completion for one prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service turns free-text transcripts into validated intents. It never
// returns an error to callers: model failures, garbage output, and unknown
// command tags all collapse to the canonical error or unknown variant, so the
// capture loop keeps running no matter what the model does.
type Service struct {
	gen Generator
	log *zap.Logger
}

func NewService(gen Generator, log *zap.Logger) *Service {
	return &Service{gen: gen, log: log}
}

func (s *Service) Interpret(ctx context.Context, transcript string) domain.Intent {
	start := time.Now()
	defer func() {
		telemetry.InterpreterLatency.Observe(time.Since(start).Seconds())
	}()

	raw, err := s.gen.Generate(ctx, BuildPrompt(transcript))
	if err != nil {
		s.log.Warn("Intent generation failed", zap.Error(err))
		return domain.ErrorIntent("failed to interpret command")
	}

	obj, ok := extractJSON(raw)
	if !ok {
		s.log.Warn("No JSON object in model output",
			zap.String("transcript", transcript),
			zap.String("output", raw),
		)
		return domain.ErrorIntent("failed to interpret command")
	}

	intent := domain.DecodeIntent([]byte(obj))
	s.log.Info("Transcript interpreted",
		zap.String("transcript", transcript),
		zap.String("command", string(intent.Command)),
	)
	return intent
}

// extractJSON returns the first balanced top-level {...} object in s. Models
// tend to wrap the object in prose or code fences; everything outside the
// braces is discarded.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
