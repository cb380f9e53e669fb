package models

import "time"

// RedditAccount is a Reddit account linked to an application user through
// OAuth. AccessToken and RefreshToken are stored AES-GCM encrypted.
type RedditAccount struct {
	ID             int64      `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	RedditUsername string     `db:"reddit_username" json:"reddit_username"`
	AccessToken    string     `db:"access_token" json:"-"`
	RefreshToken   string     `db:"refresh_token" json:"-"`
	TokenExpiry    *time.Time `db:"token_expiry" json:"token_expiry"`
	Scope          string     `db:"scope" json:"scope"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
