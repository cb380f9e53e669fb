package models

import "time"

type SavedPost struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	RedditAccountID int64      `db:"reddit_account_id" json:"reddit_account_id"`
	RedditPostID    string     `db:"reddit_post_id" json:"reddit_post_id"`
	Title           string     `db:"title" json:"title"`
	URL             string     `db:"url" json:"url"`
	MediaURL        string     `db:"media_url" json:"media_url"`
	ArchiveURL      string     `db:"archive_url" json:"archive_url"`
	PostKind        string     `db:"post_kind" json:"post_kind"`
	Subreddit       string     `db:"subreddit" json:"subreddit"`
	CreatedUTC      time.Time  `db:"created_utc" json:"created_utc"`
	ScheduledAt     *time.Time `db:"scheduled_at" json:"scheduled_at"`
	PostedAt        *time.Time `db:"posted_at" json:"posted_at"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusPending    = "pending"
	PostStatusScheduled  = "scheduled"
	PostStatusInProgress = "in_progress"
	PostStatusPosted     = "posted"
	PostStatusFailed     = "failed"
)

const (
	PostKindText      = "text"
	PostKindLink      = "link"
	PostKindImage     = "image"
	PostKindVideo     = "video"
	PostKindMediaLink = "media_link"
)
