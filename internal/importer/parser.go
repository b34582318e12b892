// Package importer turns raw delimited text into validated account records.
package importer

import (
	"fmt"
	"strings"

	"github.com/nvu/maildeck/internal/model"
)

// DefaultSeparator is the field separator used when none is configured.
const DefaultSeparator = "----"

// fieldCount is the number of required fields per line, in fixed order:
// address, secret, client id, refresh token.
const fieldCount = 4

// ParseBatch splits raw into lines, validates each one, and returns the
// account candidates ready for persistence plus the aggregate outcome.
//
// Blank lines are skipped without counting toward either tally. A line is
// rejected when it has fewer than four fields after splitting on sep, when
// any of the first four fields is empty after trimming, or when the address
// lacks an "@". Rejections never abort the batch; each appends a diagnostic
// of the form "<line-number>: <raw line>" in input order. Fields beyond the
// fourth are ignored.
//
// ParseBatch is pure: it performs no I/O and no deduplication. Callers feed
// it pasted text or file contents indifferently.
func ParseBatch(raw, sep string) ([]model.AccountRecord, model.ImportOutcome) {
	if sep == "" {
		sep = DefaultSeparator
	}

	var (
		records []model.AccountRecord
		outcome model.ImportOutcome
	)

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		record, ok := parseLine(line, sep)
		if !ok {
			outcome.FailedCount++
			outcome.FailedLines = append(
				outcome.FailedLines,
				fmt.Sprintf("%d: %s", i+1, line),
			)
			continue
		}

		outcome.SuccessCount++
		records = append(records, record)
	}

	return records, outcome
}

// parseLine validates a single trimmed, non-empty line.
func parseLine(line, sep string) (model.AccountRecord, bool) {
	parts := strings.Split(line, sep)
	if len(parts) < fieldCount {
		return model.AccountRecord{}, false
	}

	fields := make([]string, fieldCount)
	for i := 0; i < fieldCount; i++ {
		fields[i] = strings.TrimSpace(parts[i])
		if fields[i] == "" {
			return model.AccountRecord{}, false
		}
	}

	if !strings.Contains(fields[0], "@") {
		return model.AccountRecord{}, false
	}

	return model.AccountRecord{
		Address:      fields[0],
		Secret:       fields[1],
		ClientID:     fields[2],
		RefreshToken: fields[3],
	}, true
}
