package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvu/maildeck/internal/model"
	"github.com/nvu/maildeck/internal/store"
	"github.com/nvu/maildeck/tests/testutil"
)

func TestUpsertAndListAccounts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address:      "a@b.com",
		Secret:       "pw",
		ClientID:     "cid",
		RefreshToken: "rt",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a@b.com", accounts[0].Address)
	assert.Equal(t, "pw", accounts[0].Secret)
	assert.Empty(t, accounts[0].LastCheckTime)
}

func TestUpsertAccountOverwritesOnSameAddress(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "old", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	second, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "new", ClientID: "cid2", RefreshToken: "rt2",
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "new", accounts[0].Secret)
	assert.Equal(t, "cid2", accounts[0].ClientID)
}

func TestGetAccount(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "pw", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	got, err := s.GetAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Address)

	_, err = s.GetAccount(ctx, id+99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "pw", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, id))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	assert.ErrorIs(t, s.DeleteAccount(ctx, id), store.ErrNotFound)
}

func TestDeleteAccountCascadesMailRecords(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "pw", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	_, err = s.InsertMailRecord(ctx, model.MailRecord{
		AccountID: id, Subject: "hello", Folder: "INBOX",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, id))

	records, err := s.ListMailRecords(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMailRecordsOrderedNewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "pw", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	for _, ts := range []string{"2026-01-01T00:00:00Z", "2026-03-01T00:00:00Z", "2026-02-01T00:00:00Z"} {
		_, err := s.InsertMailRecord(ctx, model.MailRecord{
			AccountID: id, Subject: ts, ReceivedTime: ts, Folder: "INBOX",
		})
		require.NoError(t, err)
	}

	records, err := s.ListMailRecords(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-03-01T00:00:00Z", records[0].ReceivedTime)
	assert.Equal(t, "2026-01-01T00:00:00Z", records[2].ReceivedTime)
}

func TestMailRecordExists(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "pw", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	record := model.MailRecord{
		AccountID:    id,
		Subject:      "hello",
		Sender:       "Friend <f@test.com>",
		ReceivedTime: "2026-01-01T00:00:00Z",
		Folder:       "INBOX",
	}

	exists, err := s.MailRecordExists(ctx, record)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.InsertMailRecord(ctx, record)
	require.NoError(t, err)

	exists, err = s.MailRecordExists(ctx, record)
	require.NoError(t, err)
	assert.True(t, exists)

	// Same subject in a different mailbox is a different record.
	other := record
	other.Sender = "Other <o@test.com>"
	exists, err = s.MailRecordExists(ctx, other)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateLastCheckTime(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.AccountRecord{
		Address: "a@b.com", Secret: "pw", ClientID: "cid", RefreshToken: "rt",
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateLastCheckTime(ctx, id, "2026-08-26T10:00:00Z"))

	got, err := s.GetAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-26T10:00:00Z", got.LastCheckTime)
}
