// Package segment splits a claim email body into named sections.
//
// A section starts at a line that, after decoration is stripped, matches a
// configured header case-insensitively. Everything before the first header
// is discarded; everything after a header up to the next header belongs to
// that header's section.
package segment

import (
	"strings"
)

// Segmenter carries the configured header set.
type Segmenter struct {
	order []string
	index map[string]string // normalized header -> canonical name
}

// New builds a Segmenter for the given canonical headers.
func New(headers []string) *Segmenter {
	s := &Segmenter{
		order: make([]string, len(headers)),
		index: make(map[string]string, len(headers)),
	}
	copy(s.order, headers)
	for _, h := range headers {
		s.index[normalize(h)] = h
	}
	return s
}

// Headers returns the canonical header names in configured order.
func (s *Segmenter) Headers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Split scans the body line by line and returns the text of each section
// found, keyed by canonical header name. Sections absent from the body are
// absent from the map. If the same header appears twice, the later body is
// appended to the earlier one.
func (s *Segmenter) Split(body string) map[string]string {
	sections := make(map[string]string)

	var current string
	var buf strings.Builder

	flush := func() {
		if current == "" {
			return
		}
		text := strings.TrimSpace(buf.String())
		if existing, ok := sections[current]; ok && existing != "" {
			if text != "" {
				sections[current] = existing + "\n" + text
			}
		} else {
			sections[current] = text
		}
		buf.Reset()
	}

	for _, line := range strings.Split(body, "\n") {
		if canonical, ok := s.index[normalize(line)]; ok {
			flush()
			current = canonical
			if _, seen := sections[current]; !seen {
				sections[current] = ""
			}
			continue
		}
		if current != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	flush()

	return sections
}

// normalize strips the decoration senders put around headers: surrounding
// whitespace, asterisk emphasis, and a trailing colon.
func normalize(line string) string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "*")
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ":")
	line = strings.TrimSpace(line)
	return strings.ToLower(line)
}
