// Package folder normalizes the free-text folder labels reported by mail
// backends into the two-value taxonomy the rest of the app works with.
package folder

import "strings"

// Tag is the normalized folder bucket. It is derived from a raw label at
// read time and never stored, so records re-classify automatically when
// the rule set changes.
type Tag string

const (
	Inbox Tag = "INBOX"
	Junk  Tag = "JUNK"
)

// defaultJunkTerms matches the common provider labels plus the localized
// label used by the Outlook consumer backend.
var defaultJunkTerms = []string{"junk", "spam", "垃圾"}

// Classifier maps raw folder labels to tags. The zero value uses the
// default junk term list.
type Classifier struct {
	// JunkTerms are substrings that mark a label as junk. Matched
	// case-insensitively against the trimmed label.
	JunkTerms []string
}

// Classify returns the tag for a raw folder label. It is total: every
// input, including the empty string, maps to exactly one tag, with Inbox
// as the default.
func (c Classifier) Classify(raw string) Tag {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Inbox
	}

	terms := c.JunkTerms
	if len(terms) == 0 {
		terms = defaultJunkTerms
	}

	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(term)) {
			return Junk
		}
	}

	return Inbox
}

// Classify maps a raw folder label to a tag using the default junk terms.
func Classify(raw string) Tag {
	return Classifier{}.Classify(raw)
}
