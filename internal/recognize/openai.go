package recognize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultModel = "gpt-4o-mini"

const entityPrompt = `You are a named-entity recognizer for property insurance correspondence.
Extract every entity mention from the user text and reply with ONLY a JSON array,
no prose, where each element is {"text": "<mention>", "label": "<label>"}.
Use lowercase labels: person, organization, gpe, product, date, money, phone.
Reply with [] when the text contains no entities.`

// OpenAIConfig holds configuration for the OpenAI-backed recognizer.
type OpenAIConfig struct {
	Name       string
	APIKey     string
	Model      string
	Timeout    time.Duration
	BaseURL    string       // Optional (tests)
	HTTPClient *http.Client // Optional (tests)
}

// OpenAIRecognizer implements Recognizer using the official OpenAI SDK.
type OpenAIRecognizer struct {
	name   string
	model  string
	client openai.Client
}

// NewOpenAIRecognizer creates a new OpenAI-backed recognizer.
func NewOpenAIRecognizer(cfg OpenAIConfig) *OpenAIRecognizer {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIRecognizer{
		name:   cfg.Name,
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

// Name returns the recognizer identifier.
func (r *OpenAIRecognizer) Name() string {
	return r.name
}

// Recognize asks the model for entity mentions and parses its JSON reply.
func (r *OpenAIRecognizer) Recognize(ctx context.Context, text string) ([]Span, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(entityPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return parseSpans(resp.Choices[0].Message.Content)
}

// parseSpans decodes the model reply, tolerating markdown code fences.
func parseSpans(reply string) ([]Span, error) {
	body := strings.TrimSpace(reply)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		if idx := strings.LastIndex(body, "```"); idx >= 0 {
			body = body[:idx]
		}
		body = strings.TrimSpace(body)
	}

	var spans []Span
	if err := json.Unmarshal([]byte(body), &spans); err != nil {
		return nil, fmt.Errorf("unparseable entity reply: %w", err)
	}

	out := spans[:0]
	for _, s := range spans {
		s.Text = strings.TrimSpace(s.Text)
		s.Label = strings.ToLower(strings.TrimSpace(s.Label))
		if s.Text == "" || s.Label == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
	}
	return err
}

var _ Recognizer = (*OpenAIRecognizer)(nil)
