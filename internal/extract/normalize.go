package extract

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// isoDate is the canonical output layout for every date field.
const isoDate = "2006-01-02"

// NormalizeDate converts a raw date string to YYYY-MM-DD using the configured
// layouts in order. When no layout matches, the trimmed input is returned
// verbatim and ok is false.
func NormalizeDate(raw string, layouts []string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return value, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(isoDate), true
		}
	}

	// Senders sometimes use dots or extra spaces as separators; retry with
	// the separators normalized.
	cleaned := strings.NewReplacer(".", "/", "  ", " ").Replace(value)
	if cleaned != value {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t.Format(isoDate), true
			}
		}
	}

	return value, false
}

// NormalizePhone reduces a phone value to digits and formats it. Ten digits
// become (AAA) BBB-CCCC; eleven digits with a leading 1 become
// +1 (BBB) CCC-DDDD. Anything else is returned as its bare digit string with
// ok false, or the trimmed input when it contains no digits at all.
func NormalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return "(" + d[0:3] + ") " + d[3:6] + "-" + d[6:10], true
	case len(d) == 11 && d[0] == '1':
		return "+1 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:11], true
	case len(d) > 0:
		return d, false
	default:
		return strings.TrimSpace(raw), false
	}
}

// ParseBool maps a raw token onto true or false using the configured
// vocabularies. resolved is false for tokens in neither vocabulary, which
// callers should surface as an unresolved-value notice; the value itself is
// then false.
func ParseBool(raw string, positive, negative map[string]struct{}) (value, resolved bool) {
	token := normalizeToken(raw)
	if _, ok := positive[token]; ok {
		return true, true
	}
	if _, ok := negative[token]; ok {
		return false, true
	}
	return false, false
}

// ParseMarker interprets a bracketed checkbox marker: any non-empty marker
// other than "unchecked" counts as checked.
func ParseMarker(raw string) bool {
	token := normalizeToken(raw)
	return token != "" && token != "unchecked"
}

// SplitAttachments splits a raw attachment blob on newlines, commas, and
// semicolons and keeps tokens whose extension is in the allowed set or that
// parse as a URL with both scheme and host, deduplicated in first-seen order.
func SplitAttachments(raw string, allowedExts map[string]struct{}) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})

	out := []string{}
	seen := make(map[string]struct{})
	for _, f := range fields {
		name := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(f), "-* \t"))
		if name == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := allowedExts[ext]; !ok && !isAttachmentURL(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func isAttachmentURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// normalizeToken lowercases and trims a vocabulary token.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
