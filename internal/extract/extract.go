// Package extract turns segmented section text into typed claim fields
// using configured regular expressions.
package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
)

type compiledField struct {
	spec claim.FieldSpec
	re   *regexp.Regexp
}

type compiledSection struct {
	name   string
	fields []compiledField
}

// Extractor applies compiled per-section patterns to section bodies. A
// single Extractor is safe for concurrent use.
type Extractor struct {
	logger    *slog.Logger
	sections  []compiledSection
	fallbacks map[string]*regexp.Regexp

	dateFormats []string
	boolPos     map[string]struct{}
	boolNeg     map[string]struct{}
	attachExts  map[string]struct{}
}

// New compiles the configured patterns. A pattern that fails to compile is
// logged and skipped; its field keeps the record default.
func New(cfg *config.Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Extractor{
		logger:      logger,
		fallbacks:   make(map[string]*regexp.Regexp, len(cfg.FallbackPatterns)),
		dateFormats: cfg.DateFormats,
		boolPos:     toSet(cfg.BooleanPositive),
		boolNeg:     toSet(cfg.BooleanNegative),
		attachExts:  toSet(cfg.AttachmentExtensions),
	}

	for field, pattern := range cfg.FallbackPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Warn("skipping invalid fallback pattern", "field", field, "error", err)
			continue
		}
		e.fallbacks[field] = re
	}

	for _, section := range cfg.SectionHeaders {
		patterns := cfg.Patterns[section]
		if len(patterns) == 0 {
			continue
		}
		cs := compiledSection{name: section}
		// Registry order keeps extraction deterministic regardless of
		// config map iteration.
		for _, spec := range claim.Fields() {
			pattern, ok := patterns[spec.Name]
			if !ok {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				logger.Warn("skipping invalid extraction pattern",
					"section", section, "field", spec.Name, "error", err)
				continue
			}
			cs.fields = append(cs.fields, compiledField{spec: spec, re: re})
		}
		e.sections = append(e.sections, cs)
	}

	return e
}

// Extract runs every compiled section against its body and returns a record
// with total field coverage, plus the raw captures that produced no usable
// value (keyed by field, for downstream reconciliation). A panic inside one
// section is contained: the section's fields keep their defaults.
func (e *Extractor) Extract(sections map[string]string) (claim.Record, map[string]string) {
	rec := claim.NewRecord()
	remnants := make(map[string]string)

	for _, cs := range e.sections {
		body, ok := sections[cs.name]
		if !ok || body == "" {
			continue
		}
		partial := claim.Record{}
		found := make(map[string]string)
		if err := e.extractSection(partial, found, cs, body); err != nil {
			e.logger.Error("section extraction failed", "section", cs.name, "error", err)
			continue
		}
		rec.Merge(partial)
		for field, raw := range found {
			remnants[field] = raw
		}
	}

	return rec, remnants
}

func (e *Extractor) extractSection(partial claim.Record, remnants map[string]string, cs compiledSection, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	for _, cf := range cs.fields {
		e.extractField(partial, remnants, cs.name, cf, body)
	}
	return nil
}

func (e *Extractor) extractField(partial claim.Record, remnants map[string]string, section string, cf compiledField, body string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("field extraction failed",
				"section", section, "field", cf.spec.Name, "panic", r)
		}
	}()

	m := cf.re.FindStringSubmatch(body)
	if m == nil || len(m) < 2 {
		// The flat fallback pattern gets one try before the field defaults.
		if fb := e.fallbacks[cf.spec.Name]; fb != nil {
			m = fb.FindStringSubmatch(body)
		}
		if m == nil || len(m) < 2 {
			return
		}
	}

	// The Other checkbox carries a detail remainder in its second group.
	if cf.spec.Name == claim.FieldOtherChecked && len(m) >= 3 {
		partial[claim.FieldOtherChecked] = ParseMarker(m[1])
		partial[claim.FieldOtherDetails] = strings.TrimSpace(m[2])
		return
	}

	raw := strings.TrimSpace(m[1])
	if raw == "" {
		return
	}

	switch cf.spec.Kind {
	case claim.Checklist:
		partial[cf.spec.Name] = ParseMarker(raw)
	case claim.Boolean:
		val, resolved := ParseBool(raw, e.boolPos, e.boolNeg)
		if !resolved {
			e.logger.Warn("unresolved boolean treated as false",
				"field", cf.spec.Name, "value", raw)
		}
		partial[cf.spec.Name] = val
	case claim.Date:
		norm, ok := NormalizeDate(raw, e.dateFormats)
		if !ok {
			e.logger.Warn("unrecognized date kept verbatim",
				"field", cf.spec.Name, "value", raw)
		}
		partial[cf.spec.Name] = norm
	case claim.Phone:
		norm, ok := NormalizePhone(raw)
		if !ok {
			e.logger.Warn("unrecognized phone number kept as digits",
				"field", cf.spec.Name, "value", raw)
		}
		partial[cf.spec.Name] = norm
	case claim.List:
		items := SplitAttachments(raw, e.attachExts)
		if len(items) > 0 {
			partial[cf.spec.Name] = items
		}
	default:
		partial[cf.spec.Name] = raw
		if partial.IsDefault(cf.spec.Name) {
			// Captured text that normalized to the missing marker; keep it
			// around as a reconciliation basis.
			remnants[cf.spec.Name] = raw
		}
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[normalizeToken(v)] = struct{}{}
	}
	return set
}
