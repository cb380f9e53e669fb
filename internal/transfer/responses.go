package transfer

// AccountInfo is the public view of a linked Reddit account. Tokens are
// never exposed through the API.
type AccountInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Scope    string `json:"scope"`
}

type SavedPostInfo struct {
	ID              int64   `json:"id"`
	RedditPostID    string  `json:"reddit_post_id"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	MediaURL        string  `json:"media_url"`
	ArchiveURL      string  `json:"archive_url,omitempty"`
	PostKind        string  `json:"post_type"`
	Subreddit       string  `json:"original_subreddit"`
	CreatedUTC      string  `json:"created_utc"`
	ScheduledDate   *string `json:"scheduled_date"`
	PostedDate      *string `json:"posted_date"`
	Status          string  `json:"status"`
	RedditAccountID int64   `json:"reddit_account_id"`
}

type ImportResult struct {
	NewPostsCount     int `json:"new_posts_count"`
	UpdatedPostsCount int `json:"updated_posts_count"`
}

// PostNowResult reports a multi-target immediate post: which subreddits
// accepted the submission and which refused, in one combined message.
type PostNowResult struct {
	Posted  []string
	Failed  []string
	Message string
}
