package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nvu/maildeck/internal/model"
)

// UpsertAccount inserts a new account or, when the address already exists,
// overwrites its credentials. Returns the account id.
func (s *SQLiteStore) UpsertAccount(ctx context.Context, a model.AccountRecord) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO accounts (address, secret, client_id, refresh_token)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE
		SET secret        = excluded.secret,
		    client_id     = excluded.client_id,
		    refresh_token = excluded.refresh_token,
		    updated_at    = CURRENT_TIMESTAMP
		RETURNING id`,
		a.Address, a.Secret, a.ClientID, a.RefreshToken,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting account %s: %w", a.Address, err)
	}

	return id, nil
}

// ListAccounts returns all accounts, most recently created first.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]model.AccountRecord, error) {
	var accounts []model.AccountRecord
	err := s.db.SelectContext(ctx, &accounts, `
		SELECT id, address, secret, client_id, refresh_token, last_check_time
		FROM accounts
		ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}

	return accounts, nil
}

// GetAccount returns a single account by id, or ErrNotFound.
func (s *SQLiteStore) GetAccount(ctx context.Context, id int64) (*model.AccountRecord, error) {
	var a model.AccountRecord
	err := s.db.GetContext(ctx, &a, `
		SELECT id, address, secret, client_id, refresh_token, last_check_time
		FROM accounts
		WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting account %d: %w", id, err)
	}

	return &a, nil
}

// DeleteAccount removes an account by id. Returns ErrNotFound when the id
// is unknown. Cached mail records are removed by the FK cascade.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting account %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting account %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("account %d: %w", id, ErrNotFound)
	}

	return nil
}

// UpdateLastCheckTime records when the account's mailbox was last checked.
func (s *SQLiteStore) UpdateLastCheckTime(ctx context.Context, id int64, checkTime string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET last_check_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, checkTime, id,
	)
	if err != nil {
		return fmt.Errorf("updating last check time for account %d: %w", id, err)
	}

	return nil
}
