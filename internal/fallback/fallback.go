// Package fallback recovers what it can from emails the structured pipeline
// could not handle. Its output is best-effort but always has total field
// coverage, so downstream consumers see the same shape either way.
package fallback

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
	"github.com/claimpipe/claimpipe/internal/extract"
)

// Parser scans raw email text without relying on section structure. It runs
// the configured fallback patterns over the whole body, then a lenient
// label-colon-value line scan for anything still missing.
type Parser struct {
	logger   *slog.Logger
	patterns []compiledPattern
	labels   map[string]claim.FieldSpec // normalized display label -> field

	dateFormats []string
	boolPos     map[string]struct{}
	boolNeg     map[string]struct{}
	attachExts  map[string]struct{}
}

type compiledPattern struct {
	spec claim.FieldSpec
	re   *regexp.Regexp
}

// New builds a Parser from configuration. Invalid fallback patterns are
// logged and skipped.
func New(cfg *config.Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Parser{
		logger:      logger,
		labels:      make(map[string]claim.FieldSpec),
		dateFormats: cfg.DateFormats,
		boolPos:     vocabulary(cfg.BooleanPositive),
		boolNeg:     vocabulary(cfg.BooleanNegative),
		attachExts:  vocabulary(cfg.AttachmentExtensions),
	}

	for _, spec := range claim.Fields() {
		pattern, ok := cfg.FallbackPatterns[spec.Name]
		if !ok {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Warn("skipping invalid fallback pattern", "field", spec.Name, "error", err)
			continue
		}
		p.patterns = append(p.patterns, compiledPattern{spec: spec, re: re})
	}

	for _, spec := range claim.Fields() {
		if spec.Kind == claim.Buckets {
			continue
		}
		p.labels[strings.ToLower(claim.DisplayName(spec.Name))] = spec
	}

	return p
}

// Parse scans the raw text and returns a record with every field present.
func (p *Parser) Parse(raw string) claim.Record {
	rec := claim.NewRecord()

	for _, cp := range p.patterns {
		m := cp.re.FindStringSubmatch(raw)
		if m == nil || len(m) < 2 {
			continue
		}
		p.set(rec, cp.spec, strings.TrimSpace(m[1]))
	}

	for _, line := range strings.Split(raw, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		spec, known := p.labels[normalizeLabel(label)]
		if !known || !rec.IsDefault(spec.Name) {
			continue
		}
		p.set(rec, spec, strings.TrimSpace(value))
	}

	return rec
}

// set normalizes a raw value per field kind and stores it. Empty values keep
// the default.
func (p *Parser) set(rec claim.Record, spec claim.FieldSpec, raw string) {
	if raw == "" {
		return
	}
	switch spec.Kind {
	case claim.Checklist:
		rec[spec.Name] = extract.ParseMarker(raw)
	case claim.Boolean:
		val, resolved := extract.ParseBool(raw, p.boolPos, p.boolNeg)
		if !resolved {
			p.logger.Warn("unresolved boolean treated as false",
				"field", spec.Name, "value", raw)
		}
		rec[spec.Name] = val
	case claim.Date:
		norm, _ := extract.NormalizeDate(raw, p.dateFormats)
		rec[spec.Name] = norm
	case claim.Phone:
		norm, _ := extract.NormalizePhone(raw)
		rec[spec.Name] = norm
	case claim.List:
		if items := extract.SplitAttachments(raw, p.attachExts); len(items) > 0 {
			rec[spec.Name] = items
		}
	case claim.Buckets:
		// Entity buckets are never recovered by the fallback path.
	default:
		rec[spec.Name] = raw
	}
}

// normalizeLabel lowercases a line label and strips the decoration senders
// add around it.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.Trim(label, "*-• \t")
	return strings.ToLower(strings.TrimSpace(label))
}

func vocabulary(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
