// Package reconcile fills missing fuzzy fields with known canonical values
// using Levenshtein similarity.
package reconcile

import (
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
)

// Reconciler promotes a known canonical value into a fuzzy field when a
// candidate scores strictly above the configured threshold.
type Reconciler struct {
	fields    []string
	known     map[string][]string
	threshold int
	mode      string
	logger    *slog.Logger
}

// New builds a Reconciler from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	mode := cfg.FuzzyCompare
	if mode == "" {
		mode = config.FuzzyCompareFieldName
	}
	return &Reconciler{
		fields:    cfg.FuzzyFields,
		known:     cfg.KnownValues,
		threshold: cfg.FuzzyThreshold,
		mode:      mode,
		logger:    logger,
	}
}

// Apply reconciles every configured fuzzy field in place. Only fields still
// at their default are candidates for promotion; an extracted non-default
// value is never overwritten. remnants carries raw captures that produced no
// usable value, used as the comparison basis in captured mode.
func (r *Reconciler) Apply(rec claim.Record, remnants map[string]string) {
	for _, field := range r.fields {
		candidates := r.known[field]
		if len(candidates) == 0 || !rec.IsDefault(field) {
			continue
		}

		basis := claim.DisplayName(field)
		if r.mode == config.FuzzyCompareCaptured {
			basis = strings.TrimSpace(remnants[field])
			if basis == "" {
				continue
			}
		}

		best, score := closest(basis, candidates)
		if score > r.threshold {
			r.logger.Debug("promoted known value into missing field",
				"field", field, "basis", basis, "value", best, "score", score)
			rec[field] = best
		}
	}
}

// closest returns the candidate with the highest similarity to basis along
// with its score. Earlier candidates win ties.
func closest(basis string, candidates []string) (string, int) {
	best := ""
	bestScore := -1
	for _, c := range candidates {
		if s := Similarity(basis, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}

// Similarity scores two strings from 0 to 100, case-insensitively: 100 means
// identical, 0 means nothing in common.
func Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 - (100*dist)/maxLen
}
