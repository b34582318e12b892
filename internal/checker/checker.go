// Package checker implements the remote mailbox backend: it exchanges an
// account's refresh token for an access token, pulls new messages over
// IMAP, and lands them in the local cache. The session controller consumes
// it as a black box keyed by account id and folder.
package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nvu/maildeck/internal/folder"
	"github.com/nvu/maildeck/internal/model"
)

// Store is the slice of the persistence layer the checker needs.
type Store interface {
	GetAccount(ctx context.Context, id int64) (*model.AccountRecord, error)
	ListMailRecords(ctx context.Context, accountID int64) ([]model.MailRecord, error)
	MailRecordExists(ctx context.Context, r model.MailRecord) (bool, error)
	InsertMailRecord(ctx context.Context, r model.MailRecord) (int64, error)
	UpdateLastCheckTime(ctx context.Context, id int64, checkTime string) error
}

// tokenFunc exchanges an account's credentials for an access token.
type tokenFunc func(ctx context.Context, account model.AccountRecord) (string, error)

// Service checks remote mailboxes and maintains the mail record cache.
type Service struct {
	store   Store
	fetcher Fetcher
	cfg     model.CheckerConfig
	log     logrus.FieldLogger
	token   tokenFunc
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithFetcher overrides the IMAP fetcher, e.g. for tests.
func WithFetcher(f Fetcher) ServiceOption {
	return func(s *Service) { s.fetcher = f }
}

// WithTokenFunc overrides the OAuth token exchange, e.g. for tests.
func WithTokenFunc(fn tokenFunc) ServiceOption {
	return func(s *Service) { s.token = fn }
}

// WithClock overrides the time source, e.g. for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a checker over the given store and configuration.
func NewService(store Store, cfg model.CheckerConfig, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		fetcher: newIMAPFetcher(cfg.IMAPHost, cfg.IMAPPort),
		cfg:     cfg,
		log:     logrus.StandardLogger(),
		now:     time.Now,
	}
	s.token = s.exchangeToken
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mailboxName maps a normalized folder tag to the IMAP mailbox to select.
func mailboxName(tag folder.Tag) string {
	if tag == folder.Junk {
		return "Junk"
	}
	return "INBOX"
}

// CheckAccount checks one account's mailbox: exchange the token, fetch new
// messages since the last check, cache the ones not seen before, and stamp
// the account's last check time.
func (s *Service) CheckAccount(ctx context.Context, accountID int64, tag folder.Tag) (model.CheckResult, error) {
	checkID := uuid.New().String()
	log := s.log.WithFields(logrus.Fields{
		"check_id":   checkID,
		"account_id": accountID,
		"folder":     tag,
	})

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return s.failed(accountID, err), err
	}

	accessToken, err := s.token(ctx, *account)
	if err != nil {
		log.WithError(err).Warn("token exchange failed")
		return s.failed(accountID, err), err
	}

	var since time.Time
	if account.LastCheckTime != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, account.LastCheckTime); parseErr == nil {
			since = parsed
		}
	}

	messages, err := s.fetcher.Fetch(
		ctx, *account, accessToken, mailboxName(tag), since, s.cfg.FetchLimit,
	)
	if err != nil {
		log.WithError(err).Warn("mailbox fetch failed")
		return s.failed(accountID, err), err
	}

	saved := 0
	for _, m := range messages {
		record := model.MailRecord{
			AccountID:      accountID,
			Subject:        m.Subject,
			Sender:         m.Sender,
			Content:        m.Content,
			Folder:         m.Folder,
			HasAttachments: boolToInt(m.HasAttachments),
		}
		if !m.ReceivedTime.IsZero() {
			record.ReceivedTime = m.ReceivedTime.UTC().Format(time.RFC3339)
		}

		exists, err := s.store.MailRecordExists(ctx, record)
		if err != nil {
			return s.failed(accountID, err), err
		}
		if exists {
			continue
		}

		if _, err := s.store.InsertMailRecord(ctx, record); err != nil {
			return s.failed(accountID, err), err
		}
		saved++
	}

	checkTime := s.now().UTC().Format(time.RFC3339)
	if err := s.store.UpdateLastCheckTime(ctx, accountID, checkTime); err != nil {
		return s.failed(accountID, err), err
	}

	log.WithFields(logrus.Fields{
		"fetched": len(messages),
		"saved":   saved,
	}).Info("mailbox check complete")

	return model.CheckResult{
		AccountID: accountID,
		Success:   true,
		Fetched:   len(messages),
		Saved:     saved,
		Message:   fmt.Sprintf("fetched %d messages, %d new", len(messages), saved),
	}, nil
}

// CheckAll checks every account in ids against the same folder. Individual
// failures are recorded and do not abort the remaining checks.
func (s *Service) CheckAll(ctx context.Context, ids []int64, tag folder.Tag) model.BatchCheckResult {
	var batch model.BatchCheckResult

	for _, id := range ids {
		result, err := s.CheckAccount(ctx, id, tag)
		if err != nil {
			batch.FailedCount++
		} else {
			batch.SuccessCount++
		}
		batch.Results = append(batch.Results, result)
	}

	return batch
}

// TriggerMailboxSync satisfies the session backend contract: one check,
// errors reported to the caller who treats them as non-fatal.
func (s *Service) TriggerMailboxSync(ctx context.Context, accountID int64, tag folder.Tag) error {
	if _, err := s.CheckAccount(ctx, accountID, tag); err != nil {
		return err
	}
	return nil
}

// ListMailRecords satisfies the session backend contract by reading the
// cache.
func (s *Service) ListMailRecords(ctx context.Context, accountID int64) ([]model.MailRecord, error) {
	return s.store.ListMailRecords(ctx, accountID)
}

// failed builds the CheckResult for a failed check.
func (s *Service) failed(accountID int64, err error) model.CheckResult {
	return model.CheckResult{
		AccountID: accountID,
		Success:   false,
		Message:   fmt.Sprintf("check failed: %v", err),
	}
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
