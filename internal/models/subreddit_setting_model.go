package models

import "time"

// SubredditSetting is the per-user ordered list of subreddits offered as
// cross-posting targets. One row per user, replaced wholesale on save.
type SubredditSetting struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Subreddits []string  `db:"subreddits" json:"subreddits"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
