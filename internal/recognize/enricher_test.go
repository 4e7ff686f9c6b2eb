package recognize

import (
	"context"
	"errors"
	"testing"

	"github.com/claimpipe/claimpipe/internal/config"
)

type stubRecognizer struct {
	name     string
	spans    []Span
	err      error
	failures int // errors to return before succeeding
	calls    int
}

func (s *stubRecognizer) Name() string { return s.name }

func (s *stubRecognizer) Recognize(_ context.Context, _ string) ([]Span, error) {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("transient")
	}
	return s.spans, s.err
}

func testRecognizersConfig() config.RecognizersConfig {
	return config.RecognizersConfig{
		RelevantLabels: []string{"person", "organization", "date"},
		Retries:        2,
	}
}

func TestEnricher_Enrich(t *testing.T) {
	t.Run("buckets relevant labels", func(t *testing.T) {
		general := &stubRecognizer{name: "general", spans: []Span{
			{Text: "Jane Doe", Label: "person"},
			{Text: "Allianz", Label: "organization"},
			{Text: "$5,000", Label: "money"}, // not relevant
			{Text: "Jane Doe", Label: "person"},
		}}

		e := NewEnricher(testRecognizersConfig(), general, nil, nil)
		gb, tb := e.Enrich(context.Background(), "some email text")

		if got := gb.Mentions("person"); len(got) != 1 || got[0] != "Jane Doe" {
			t.Errorf("person mentions = %v", got)
		}
		if got := gb.Mentions("organization"); len(got) != 1 || got[0] != "Allianz" {
			t.Errorf("organization mentions = %v", got)
		}
		if got := gb.Mentions("money"); len(got) != 0 {
			t.Errorf("irrelevant label passed through: %v", got)
		}
		if tb.Len() != 0 {
			t.Errorf("disabled transformer slot produced %v", tb)
		}
	})

	t.Run("transformer keeps its own group labels", func(t *testing.T) {
		transformer := &stubRecognizer{name: "transformer", spans: []Span{
			{Text: "Jane Doe", Label: "PER"},
			{Text: "Allianz", Label: "ORG"},
			{Text: "$5,000", Label: "MISC"},
		}}

		e := NewEnricher(testRecognizersConfig(), nil, transformer, nil)
		_, tb := e.Enrich(context.Background(), "some email text")

		if tb.Len() != 3 {
			t.Fatalf("transformer bucket len = %d, want 3", tb.Len())
		}
		if got := tb.Mentions("misc"); len(got) != 1 || got[0] != "$5,000" {
			t.Errorf("misc mentions = %v", got)
		}
	})

	t.Run("one failing slot leaves the other intact", func(t *testing.T) {
		general := &stubRecognizer{name: "general", err: errors.New("boom")}
		transformer := &stubRecognizer{name: "transformer", spans: []Span{
			{Text: "Allianz", Label: "ORG"},
		}}

		e := NewEnricher(testRecognizersConfig(), general, transformer, nil)
		gb, tb := e.Enrich(context.Background(), "text")

		if gb.Len() != 0 {
			t.Errorf("general bucket = %v, want empty", gb)
		}
		if got := tb.Mentions("org"); len(got) != 1 {
			t.Errorf("org mentions = %v", got)
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		general := &stubRecognizer{
			name:     "general",
			failures: 2,
			spans:    []Span{{Text: "GEICO", Label: "organization"}},
		}

		e := NewEnricher(testRecognizersConfig(), general, nil, nil)
		gb, _ := e.Enrich(context.Background(), "text")

		if general.calls != 3 {
			t.Errorf("expected 3 attempts, got %d", general.calls)
		}
		if got := gb.Mentions("organization"); len(got) != 1 {
			t.Errorf("organization mentions = %v", got)
		}
	})

	t.Run("exhausted retries yield empty bucket", func(t *testing.T) {
		general := &stubRecognizer{name: "general", err: errors.New("boom")}

		e := NewEnricher(testRecognizersConfig(), general, nil, nil)
		gb, _ := e.Enrich(context.Background(), "text")

		if gb.Len() != 0 {
			t.Errorf("expected empty bucket after failure, got %v", gb)
		}
	})

	t.Run("empty text skips recognizers", func(t *testing.T) {
		general := &stubRecognizer{name: "general"}

		e := NewEnricher(testRecognizersConfig(), general, nil, nil)
		e.Enrich(context.Background(), "   ")

		if general.calls != 0 {
			t.Errorf("recognizer called %d times for empty text", general.calls)
		}
	})
}

func TestParseSpans(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		spans, err := parseSpans(`[{"text":"Jane","label":"PERSON"}]`)
		if err != nil {
			t.Fatalf("parseSpans: %v", err)
		}
		if len(spans) != 1 || spans[0].Text != "Jane" || spans[0].Label != "person" {
			t.Errorf("spans = %v", spans)
		}
	})

	t.Run("fenced array", func(t *testing.T) {
		spans, err := parseSpans("```json\n[{\"text\":\"Allianz\",\"label\":\"organization\"}]\n```")
		if err != nil {
			t.Fatalf("parseSpans: %v", err)
		}
		if len(spans) != 1 || spans[0].Text != "Allianz" {
			t.Errorf("spans = %v", spans)
		}
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		spans, err := parseSpans(`[{"text":"  ","label":"person"},{"text":"Ana","label":""}]`)
		if err != nil {
			t.Fatalf("parseSpans: %v", err)
		}
		if len(spans) != 0 {
			t.Errorf("spans = %v", spans)
		}
	})

	t.Run("prose reply is an error", func(t *testing.T) {
		if _, err := parseSpans("I found no entities."); err == nil {
			t.Error("expected error for non-JSON reply")
		}
	})
}
