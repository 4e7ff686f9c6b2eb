// Package rules applies declarative post-extraction rules to a claim record.
package rules

import (
	"fmt"
	"log/slog"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
)

// Engine evaluates configured rules of the form "when condition field equals
// condition value, set target field to action value". Rules are independent
// and applying them twice yields the same record.
type Engine struct {
	rules  []config.Rule
	logger *slog.Logger
}

// New builds an Engine from configuration.
func New(rules []config.Rule, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{rules: rules, logger: logger}
}

// Apply evaluates every rule against the record in place. Malformed rules
// are logged and skipped; they never abort the pass.
func (e *Engine) Apply(rec claim.Record) {
	for i, rule := range e.rules {
		if rule.TargetField == "" || rule.ConditionField == "" {
			e.logger.Warn("skipping malformed rule", "index", i, "rule", rule)
			continue
		}
		if _, ok := claim.Lookup(rule.TargetField); !ok {
			e.logger.Warn("skipping rule with unknown target field",
				"index", i, "target", rule.TargetField)
			continue
		}

		current, ok := rec[rule.ConditionField]
		if !ok {
			continue
		}
		// Values arrive from YAML, JSON, and extraction with mixed types;
		// compare their string forms.
		if fmt.Sprint(current) != fmt.Sprint(rule.ConditionValue) {
			continue
		}
		rec[rule.TargetField] = rule.ActionValue
	}
}
