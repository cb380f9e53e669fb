package models

import "time"

// Credential holds the application-level Reddit API client credentials.
// Exactly one row exists; saving always writes the same row.
type Credential struct {
	ID           int64     `db:"id" json:"id"`
	ClientID     string    `db:"client_id" json:"client_id"`
	ClientSecret string    `db:"client_secret" json:"client_secret"`
	RedirectURI  string    `db:"redirect_uri" json:"redirect_uri"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
