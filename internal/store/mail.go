package store

import (
	"context"
	"fmt"

	"github.com/nvu/maildeck/internal/model"
)

// ListMailRecords returns every cached record for an account, newest first.
func (s *SQLiteStore) ListMailRecords(ctx context.Context, accountID int64) ([]model.MailRecord, error) {
	var records []model.MailRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, account_id, subject, sender, received_time, content, folder, has_attachments
		FROM mail_records
		WHERE account_id = ?
		ORDER BY received_time DESC, id DESC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying mail records for account %d: %w", accountID, err)
	}

	return records, nil
}

// MailRecordExists reports whether an equivalent record is already cached.
// Identity is (account, subject, sender, received_time), mirroring how the
// backend reports messages without stable ids.
func (s *SQLiteStore) MailRecordExists(ctx context.Context, r model.MailRecord) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM mail_records
		WHERE account_id = ? AND subject = ? AND sender = ? AND received_time = ?`,
		r.AccountID, r.Subject, r.Sender, r.ReceivedTime,
	)
	if err != nil {
		return false, fmt.Errorf("checking mail record existence: %w", err)
	}

	return count > 0, nil
}

// InsertMailRecord caches a new record and returns its id.
func (s *SQLiteStore) InsertMailRecord(ctx context.Context, r model.MailRecord) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO mail_records
			(account_id, subject, sender, received_time, content, folder, has_attachments)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		r.AccountID, r.Subject, r.Sender, r.ReceivedTime, r.Content, r.Folder, r.HasAttachments,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting mail record for account %d: %w", r.AccountID, err)
	}

	return id, nil
}
