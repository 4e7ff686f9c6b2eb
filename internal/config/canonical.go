package config

import (
	"strings"

	"github.com/claimpipe/claimpipe/internal/claim"
)

// canonicalize restores canonical casing in map keys and field references.
// Viper lowercases map keys when it merges defaults, files, and environment
// variables, but patterns and known values are keyed by field and section
// names that the rest of the pipeline looks up verbatim. Unknown keys are
// left untouched.
func (c *Config) canonicalize() {
	fields := make(map[string]string)
	for _, f := range claim.Fields() {
		fields[strings.ToLower(f.Name)] = f.Name
	}
	sections := make(map[string]string, len(c.SectionHeaders))
	for _, s := range c.SectionHeaders {
		sections[strings.ToLower(s)] = s
	}

	canonField := func(name string) string {
		if canon, ok := fields[strings.ToLower(name)]; ok {
			return canon
		}
		return name
	}

	if c.Patterns != nil {
		patterns := make(map[string]map[string]string, len(c.Patterns))
		for section, byField := range c.Patterns {
			if canon, ok := sections[strings.ToLower(section)]; ok {
				section = canon
			}
			m := make(map[string]string, len(byField))
			for name, pattern := range byField {
				m[canonField(name)] = pattern
			}
			patterns[section] = m
		}
		c.Patterns = patterns
	}

	if c.FallbackPatterns != nil {
		m := make(map[string]string, len(c.FallbackPatterns))
		for name, pattern := range c.FallbackPatterns {
			m[canonField(name)] = pattern
		}
		c.FallbackPatterns = m
	}

	if c.KnownValues != nil {
		m := make(map[string][]string, len(c.KnownValues))
		for name, values := range c.KnownValues {
			m[canonField(name)] = values
		}
		c.KnownValues = m
	}

	for i, name := range c.FuzzyFields {
		c.FuzzyFields[i] = canonField(name)
	}
	for i := range c.PostRules {
		c.PostRules[i].TargetField = canonField(c.PostRules[i].TargetField)
		c.PostRules[i].ConditionField = canonField(c.PostRules[i].ConditionField)
	}
}
