package folder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Tag
	}{
		{"empty defaults to inbox", "", Inbox},
		{"whitespace only", "   ", Inbox},
		{"plain inbox", "INBOX", Inbox},
		{"junk exact", "Junk", Junk},
		{"junk uppercase", "JUNK", Junk},
		{"junk embedded", "Junk Email", Junk},
		{"spam", "Spam", Junk},
		{"gmail spam path", "[Gmail]/Spam", Junk},
		{"localized junk", "垃圾邮件", Junk},
		{"sent is not junk", "Sent Items", Inbox},
		{"archive is not junk", "Archive", Inbox},
		{"padded label", "  junk  ", Junk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	labels := []string{"", "INBOX", "Junk Email", "[Gmail]/Spam", "Drafts"}
	for _, raw := range labels {
		first := Classify(raw)
		second := Classify(raw)
		assert.Equal(t, first, second, "label %q", raw)
	}
}

func TestClassifierCustomTerms(t *testing.T) {
	c := Classifier{JunkTerms: []string{"quarantine"}}

	assert.Equal(t, Junk, c.Classify("Quarantine"))
	// Custom terms replace the defaults entirely.
	assert.Equal(t, Inbox, c.Classify("Junk Email"))
}

func TestClassifierEmptyTermSkipped(t *testing.T) {
	c := Classifier{JunkTerms: []string{"", "spam"}}

	// An empty term must not match every label.
	assert.Equal(t, Inbox, c.Classify("INBOX"))
	assert.Equal(t, Junk, c.Classify("spam"))
}
