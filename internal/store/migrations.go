package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	address         TEXT NOT NULL UNIQUE,
	secret          TEXT NOT NULL,
	client_id       TEXT NOT NULL,
	refresh_token   TEXT NOT NULL,
	last_check_time TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS mail_records (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id      INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	subject         TEXT NOT NULL DEFAULT '',
	sender          TEXT NOT NULL DEFAULT '',
	received_time   TEXT NOT NULL DEFAULT '',
	content         TEXT NOT NULL DEFAULT '',
	folder          TEXT NOT NULL DEFAULT '',
	has_attachments INTEGER NOT NULL DEFAULT 0 CHECK(has_attachments IN (0, 1)),
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_accounts_address ON accounts(address);
CREATE INDEX IF NOT EXISTS idx_mail_records_account_id ON mail_records(account_id);
CREATE INDEX IF NOT EXISTS idx_mail_records_received ON mail_records(received_time);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_mail_records_dedupe
	ON mail_records(account_id, subject, sender, received_time);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
