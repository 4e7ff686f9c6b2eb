package claim

import "strings"

// Bucket groups entity mentions by label. Mentions within a label keep
// first-seen order and are unique. Two independent buckets travel on every
// record (Entities, TransformerEntities); they are never merged together.
type Bucket map[string][]string

// Add appends a mention under label unless it is already present.
// Empty labels and mentions are dropped.
func (b Bucket) Add(label, mention string) {
	label = strings.TrimSpace(label)
	mention = strings.TrimSpace(mention)
	if label == "" || mention == "" {
		return
	}
	for _, m := range b[label] {
		if m == mention {
			return
		}
	}
	b[label] = append(b[label], mention)
}

// Mentions returns the mention list for a label, nil if absent.
func (b Bucket) Mentions(label string) []string {
	return b[label]
}

// Len returns the total mention count across all labels.
func (b Bucket) Len() int {
	n := 0
	for _, ms := range b {
		n += len(ms)
	}
	return n
}
