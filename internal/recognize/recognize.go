// Package recognize finds entity mentions in claim email text.
package recognize

import (
	"context"
	"fmt"
	"time"

	"github.com/claimpipe/claimpipe/internal/config"
)

// Span is one entity mention found in free text.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer finds entity mentions in free text. Implementations must be
// safe for concurrent use.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// NewFromConfig builds a recognizer for one configured slot. A disabled slot
// yields a nil recognizer and no error.
func NewFromConfig(name string, cfg config.RecognizerConfig) (Recognizer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Type {
	case "openai":
		return NewOpenAIRecognizer(OpenAIConfig{
			Name:    name,
			APIKey:  config.ResolveEnvVars(cfg.APIKey),
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown recognizer type %q", cfg.Type)
	}
}
