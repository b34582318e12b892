package importer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nvu/maildeck/internal/model"
)

// AccountWriter persists parsed account records.
type AccountWriter interface {
	UpsertAccount(ctx context.Context, a model.AccountRecord) (int64, error)
}

// Import parses raw delimited text and persists every valid record through
// w. Persistence failures are folded into the outcome as additional failed
// lines rather than aborting the batch, matching the parser's per-line
// tolerance.
func Import(ctx context.Context, w AccountWriter, raw, sep string) model.ImportOutcome {
	records, outcome := ParseBatch(raw, sep)

	for _, r := range records {
		if _, err := w.UpsertAccount(ctx, r); err != nil {
			logrus.WithField("address", r.Address).
				WithError(err).Error("importing account failed")
			outcome.SuccessCount--
			outcome.FailedCount++
			outcome.FailedLines = append(
				outcome.FailedLines,
				fmt.Sprintf("%s: %v", r.Address, err),
			)
			continue
		}
	}

	return outcome
}
