package recognize

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
)

// Enricher runs the configured recognizers over raw email text and buckets
// the mentions they find. Recognizer failures never fail the caller; the
// corresponding bucket is simply empty.
type Enricher struct {
	general     Recognizer
	transformer Recognizer
	labels      map[string]struct{}
	retries     uint
	logger      *slog.Logger
}

// NewEnricher wires the general and transformer recognizer slots. Either may
// be nil when its slot is disabled.
func NewEnricher(cfg config.RecognizersConfig, general, transformer Recognizer, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}

	labels := make(map[string]struct{}, len(cfg.RelevantLabels))
	for _, l := range cfg.RelevantLabels {
		labels[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}

	retries := uint(0)
	if cfg.Retries > 0 {
		retries = uint(cfg.Retries)
	}

	return &Enricher{
		general:     general,
		transformer: transformer,
		labels:      labels,
		retries:     retries,
		logger:      logger,
	}
}

// Names lists the active recognizer slots in wiring order.
func (e *Enricher) Names() []string {
	var names []string
	if e.general != nil {
		names = append(names, e.general.Name())
	}
	if e.transformer != nil {
		names = append(names, e.transformer.Name())
	}
	return names
}

// Enrich returns a bucket per recognizer slot. Disabled slots and failed
// recognizers yield empty buckets. The general slot is filtered to the
// configured relevant labels; the transformer slot keeps its own group
// labels as-is.
func (e *Enricher) Enrich(ctx context.Context, text string) (general, transformer claim.Bucket) {
	return e.run(ctx, e.general, text, true), e.run(ctx, e.transformer, text, false)
}

func (e *Enricher) run(ctx context.Context, rec Recognizer, text string, filter bool) claim.Bucket {
	bucket := claim.Bucket{}
	if rec == nil || strings.TrimSpace(text) == "" {
		return bucket
	}

	var spans []Span
	err := retry.Do(
		func() error {
			var rerr error
			spans, rerr = rec.Recognize(ctx, text)
			return rerr
		},
		retry.Context(ctx),
		retry.Attempts(e.retries+1),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		e.logger.Warn("entity recognition failed", "recognizer", rec.Name(), "error", err)
		return bucket
	}

	for _, s := range spans {
		label := strings.ToLower(s.Label)
		if filter {
			if _, relevant := e.labels[label]; !relevant {
				continue
			}
		}
		bucket.Add(label, s.Text)
	}
	return bucket
}
