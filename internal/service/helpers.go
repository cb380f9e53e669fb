package service

import (
	"context"
	"fmt"
	"time"

	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
)

// requireCredentials loads the credential singleton once and hands it back
// as a value, so callers thread it through explicitly instead of re-reading
// the row mid-operation.
func requireCredentials(ctx context.Context, cr repository.CredentialRepository) (reddit.Credentials, error) {
	cred, ok, err := cr.Get(ctx)
	if err != nil {
		return reddit.Credentials{}, err
	}
	if !ok {
		return reddit.Credentials{}, ErrCredentialsNotConfigured
	}

	creds := reddit.Credentials{
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		RedirectURI:  cred.RedirectURI,
	}
	if !creds.Complete() {
		return reddit.Credentials{}, ErrCredentialsNotConfigured
	}
	return creds, nil
}

// SubmitSavedPost submits one stored post to one subreddit with the
// kind-dependent rules shared by the dispatch job and the immediate post
// path: text posts carry the URL field as self text, everything else is a
// link post. Unsupported kinds fail before any API call is made.
func SubmitSavedPost(ctx context.Context, api reddit.API, post *models.SavedPost, subreddit string) (*reddit.Submission, error) {
	switch post.PostKind {
	case models.PostKindText:
		return api.Submit(ctx, reddit.SubmitRequest{
			Subreddit: subreddit,
			Title:     post.Title,
			Kind:      reddit.SubmitKindSelf,
			Text:      post.URL,
		})
	case models.PostKindLink, models.PostKindImage, models.PostKindVideo, models.PostKindMediaLink:
		return api.Submit(ctx, reddit.SubmitRequest{
			Subreddit: subreddit,
			Title:     post.Title,
			Kind:      reddit.SubmitKindLink,
			URL:       post.URL,
		})
	default:
		return nil, fmt.Errorf("unsupported post type %q", post.PostKind)
	}
}

var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseScheduledDate accepts ISO-8601 timestamps; a trailing Z or explicit
// offset is honored, a naive timestamp is taken as UTC.
func parseScheduledDate(s string) (time.Time, error) {
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}
