package model

// AccountRecord is one set of mail-access credentials managed by the app.
// IDs are assigned by the store on insert.
type AccountRecord struct {
	// ID is the stable integer identifier assigned by the store.
	ID int64 `json:"id" db:"id"`

	// Address is the mailbox address. Always non-empty and contains an "@".
	Address string `json:"address" db:"address"`

	// Secret is the opaque credential string. It is stored and copied
	// verbatim; no part of the app parses or validates it.
	Secret string `json:"secret" db:"secret"`

	// ClientID is the OAuth application (client) id.
	ClientID string `json:"client_id" db:"client_id"`

	// RefreshToken is the OAuth refresh token used to mint access tokens.
	RefreshToken string `json:"refresh_token" db:"refresh_token"`

	// LastCheckTime is the RFC 3339 timestamp of the last successful
	// mailbox check, or empty if the account has never been checked.
	LastCheckTime string `json:"last_check_time" db:"last_check_time"`
}
