package model

// MailRecord is one cached message belonging to an account. Records are
// written by the checker and only ever read by the rest of the app.
type MailRecord struct {
	// ID is the unique identifier assigned by the store.
	ID int64 `json:"id" db:"id"`

	// AccountID links this record to its owning AccountRecord.
	AccountID int64 `json:"account_id" db:"account_id"`

	// Subject is the decoded subject line, possibly empty.
	Subject string `json:"subject" db:"subject"`

	// Sender is the raw From header, either "Display Name <addr>" or a
	// bare address.
	Sender string `json:"sender" db:"sender"`

	// ReceivedTime is the RFC 3339 receive timestamp, or empty when the
	// message carried no parseable Date header.
	ReceivedTime string `json:"received_time" db:"received_time"`

	// Content is the message body, raw HTML or plain text.
	Content string `json:"content" db:"content"`

	// Folder is the raw folder label reported by the backend. The
	// normalized folder tag is derived from it at read time, never stored.
	Folder string `json:"folder" db:"folder"`

	// HasAttachments is 1 when the message carried attachments, else 0.
	HasAttachments int64 `json:"has_attachments" db:"has_attachments"`
}

// ImportOutcome aggregates the result of one batch import.
type ImportOutcome struct {
	// SuccessCount is the number of lines parsed and persisted.
	SuccessCount int `json:"success_count"`

	// FailedCount is the number of non-empty lines rejected.
	FailedCount int `json:"failed_count"`

	// FailedLines holds one diagnostic per rejected line, in input order,
	// each of the form "<line-number>: <raw line>".
	FailedLines []string `json:"failed_lines"`
}

// CheckResult reports the outcome of checking one account's mailbox.
type CheckResult struct {
	// AccountID identifies the checked account.
	AccountID int64 `json:"account_id"`

	// Success is false when the check failed outright.
	Success bool `json:"success"`

	// Fetched is the number of messages returned by the backend.
	Fetched int `json:"fetched"`

	// Saved is the number of messages newly added to the cache.
	Saved int `json:"saved"`

	// Message is a human-readable summary of the check.
	Message string `json:"message"`
}

// BatchCheckResult aggregates the per-account results of a bulk check.
type BatchCheckResult struct {
	SuccessCount int           `json:"success_count"`
	FailedCount  int           `json:"failed_count"`
	Results      []CheckResult `json:"results"`
}
