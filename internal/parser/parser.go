// Package parser orchestrates the claim extraction pipeline: segmentation,
// pattern extraction, entity enrichment, reconciliation, post rules, and
// schema validation, with a fallback scan when the structured path fails.
package parser

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
	"github.com/claimpipe/claimpipe/internal/extract"
	"github.com/claimpipe/claimpipe/internal/fallback"
	"github.com/claimpipe/claimpipe/internal/recognize"
	"github.com/claimpipe/claimpipe/internal/reconcile"
	"github.com/claimpipe/claimpipe/internal/rules"
	"github.com/claimpipe/claimpipe/internal/schema"
	"github.com/claimpipe/claimpipe/internal/segment"
)

// Result is the outcome of parsing one email.
type Result struct {
	ID            string        `json:"id"`
	Record        claim.Record  `json:"record"`
	Valid         bool          `json:"valid"`
	Validation    string        `json:"validation_message,omitempty"`
	UsedFallback  bool          `json:"used_fallback"`
	MissingFields []string      `json:"missing_fields,omitempty"`
	Duration      time.Duration `json:"-"`
	DurationMS    int64         `json:"duration_ms"`
}

// Pipeline wires the extraction stages together. It is safe for concurrent
// use once built.
type Pipeline struct {
	logger     *slog.Logger
	segmenter  *segment.Segmenter
	extractor  *extract.Extractor
	enricher   *recognize.Enricher
	reconciler *reconcile.Reconciler
	rules      *rules.Engine
	validator  schema.Validator
	fallback   *fallback.Parser
}

// New builds a Pipeline from configuration. The enricher may be nil when no
// recognizer is enabled.
func New(cfg *config.Config, enricher *recognize.Enricher, validator schema.Validator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:     logger,
		segmenter:  segment.New(cfg.SectionHeaders),
		extractor:  extract.New(cfg, logger),
		enricher:   enricher,
		reconciler: reconcile.New(cfg, logger),
		rules:      rules.New(cfg.PostRules, logger),
		validator:  validator,
		fallback:   fallback.New(cfg, logger),
	}
}

// Recognizers reports the names of the active entity recognizers, for
// readiness reporting.
func (p *Pipeline) Recognizers() []string {
	if p.enricher == nil {
		return nil
	}
	return p.enricher.Names()
}

// Parse runs the full pipeline over one raw email body. It never returns an
// error: when the structured path panics or its output fails validation, the
// fallback scan's best-effort record is returned as-is.
func (p *Pipeline) Parse(ctx context.Context, raw string) *Result {
	start := time.Now()
	res := &Result{ID: uuid.NewString()}
	log := p.logger.With("parse_id", res.ID)

	rec, ok := p.structured(ctx, raw, log, res)
	if !ok {
		rec = p.fallback.Parse(raw)
		res.UsedFallback = true
	}
	res.Record = rec

	res.MissingFields = rec.MissingFields()
	if len(res.MissingFields) > 0 {
		log.Info("record has unfilled fields",
			"count", len(res.MissingFields), "fields", res.MissingFields)
	}

	res.Duration = time.Since(start)
	res.DurationMS = res.Duration.Milliseconds()
	log.Info("parse complete",
		"valid", res.Valid,
		"used_fallback", res.UsedFallback,
		"duration_ms", res.DurationMS)
	return res
}

// structured runs the section-based path. ok is false when the output must
// be replaced by the fallback scan.
func (p *Pipeline) structured(ctx context.Context, raw string, log *slog.Logger, res *Result) (rec claim.Record, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("structured parse panicked", "panic", r)
			rec, ok = nil, false
		}
	}()

	sections := p.segmenter.Split(raw)
	if len(sections) == 0 {
		log.Warn("no recognizable sections", "known_headers", p.segmenter.Headers())
	}

	rec, remnants := p.extractor.Extract(sections)

	if p.enricher != nil {
		general, transformer := p.enricher.Enrich(ctx, raw)
		rec[claim.FieldEntities] = general
		rec[claim.FieldTransformerEntities] = transformer
	}

	p.reconciler.Apply(rec, remnants)
	p.rules.Apply(rec)

	valid, reason := p.validator.Validate(rec)
	res.Valid = valid
	res.Validation = reason
	if !valid {
		log.Warn("record failed schema validation", "reason", reason)
		return nil, false
	}
	return rec, true
}
