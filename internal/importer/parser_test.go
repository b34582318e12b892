package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvu/maildeck/internal/model"
)

func TestParseBatchSingleValidLine(t *testing.T) {
	records, outcome := ParseBatch("a@b.com----pw----cid----rt", "----")

	require.Len(t, records, 1)
	assert.Equal(t, model.AccountRecord{
		Address:      "a@b.com",
		Secret:       "pw",
		ClientID:     "cid",
		RefreshToken: "rt",
	}, records[0])
	assert.Equal(t, 1, outcome.SuccessCount)
	assert.Equal(t, 0, outcome.FailedCount)
	assert.Empty(t, outcome.FailedLines)
}

func TestParseBatchTooFewFields(t *testing.T) {
	records, outcome := ParseBatch("a@b.com----pw", "----")

	assert.Empty(t, records)
	assert.Equal(t, 0, outcome.SuccessCount)
	assert.Equal(t, 1, outcome.FailedCount)
	require.Len(t, outcome.FailedLines, 1)
	assert.Equal(t, "1: a@b.com----pw", outcome.FailedLines[0])
}

func TestParseBatchBlankLinesSkipped(t *testing.T) {
	raw := "\n\na@b.com----pw----cid----rt\n   \nc@d.com----pw----cid----rt\n"
	records, outcome := ParseBatch(raw, "----")

	assert.Len(t, records, 2)
	assert.Equal(t, 2, outcome.SuccessCount)
	assert.Equal(t, 0, outcome.FailedCount)
}

func TestParseBatchNeverAbortsEarly(t *testing.T) {
	raw := strings.Join([]string{
		"bad line",
		"a@b.com----pw----cid----rt",
		"also----bad",
		"c@d.com----pw----cid----rt",
	}, "\n")

	records, outcome := ParseBatch(raw, "----")

	assert.Len(t, records, 2)
	assert.Equal(t, 2, outcome.SuccessCount)
	assert.Equal(t, 2, outcome.FailedCount)
	// Diagnostics keep input order and reference 1-based line numbers.
	require.Len(t, outcome.FailedLines, 2)
	assert.Equal(t, "1: bad line", outcome.FailedLines[0])
	assert.Equal(t, "3: also----bad", outcome.FailedLines[1])
}

func TestParseBatchEmptyFieldRejected(t *testing.T) {
	records, outcome := ParseBatch("a@b.com----    ----cid----rt", "----")

	assert.Empty(t, records)
	assert.Equal(t, 1, outcome.FailedCount)
}

func TestParseBatchAddressMustContainAt(t *testing.T) {
	records, outcome := ParseBatch("not-an-address----pw----cid----rt", "----")

	assert.Empty(t, records)
	assert.Equal(t, 1, outcome.FailedCount)
}

func TestParseBatchExtraFieldsIgnored(t *testing.T) {
	records, outcome := ParseBatch("a@b.com----pw----cid----rt----extra----more", "----")

	require.Len(t, records, 1)
	assert.Equal(t, "rt", records[0].RefreshToken)
	assert.Equal(t, 1, outcome.SuccessCount)
}

func TestParseBatchFieldsAreTrimmed(t *testing.T) {
	records, _ := ParseBatch("  a@b.com ---- pw ---- cid ---- rt  ", "----")

	require.Len(t, records, 1)
	assert.Equal(t, "a@b.com", records[0].Address)
	assert.Equal(t, "pw", records[0].Secret)
}

func TestParseBatchCustomSeparator(t *testing.T) {
	records, outcome := ParseBatch("a@b.com|pw|cid|rt", "|")

	require.Len(t, records, 1)
	assert.Equal(t, "cid", records[0].ClientID)
	assert.Equal(t, 1, outcome.SuccessCount)
}

func TestParseBatchEmptySeparatorUsesDefault(t *testing.T) {
	records, _ := ParseBatch("a@b.com----pw----cid----rt", "")

	assert.Len(t, records, 1)
}

func TestParseBatchAccounting(t *testing.T) {
	raw := "a@b.com----pw----cid----rt\n\nbad\nc@d.com----pw----cid----rt\n\n"
	_, outcome := ParseBatch(raw, "----")

	nonEmpty := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}

	assert.Equal(t, nonEmpty, outcome.SuccessCount+outcome.FailedCount)
}
