package transfer

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CredentialUpdate struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}

type SubredditUpdate struct {
	DesiredSubreddits []string `json:"desired_subreddits"`
}

type FetchSavedRequest struct {
	RedditAccountID int64 `json:"reddit_account_id"`
}

type PostNowRequest struct {
	PostID             int64    `json:"post_id"`
	SelectedSubreddits []string `json:"selected_subreddits"`
}

type SchedulePostRequest struct {
	PostID        int64  `json:"post_id"`
	ScheduledDate string `json:"scheduled_date"`
}
