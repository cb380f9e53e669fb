package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/transfer"
	"github.com/benask/autoposter/pkg/utils"
)

type PostService interface {
	List(ctx context.Context, userID int64, status string) ([]*transfer.SavedPostInfo, error)
	Remove(ctx context.Context, userID, postID int64) error
	Schedule(ctx context.Context, userID, postID int64, scheduledDate string) (time.Time, error)
	PostNow(ctx context.Context, userID, postID int64, subreddits []string) (*transfer.PostNowResult, error)
}

type postService struct {
	cfg config.Config
	cr  repository.CredentialRepository
	ar  repository.RedditAccountRepository
	pr  repository.PostRepository
	f   reddit.Factory
}

func NewPostService(cfg config.Config, cr repository.CredentialRepository, ar repository.RedditAccountRepository, pr repository.PostRepository, f reddit.Factory) PostService {
	return &postService{cfg: cfg, cr: cr, ar: ar, pr: pr, f: f}
}

func (s *postService) List(ctx context.Context, userID int64, status string) ([]*transfer.SavedPostInfo, error) {
	posts, err := s.pr.ListByUserID(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing saved posts")
	}

	infos := make([]*transfer.SavedPostInfo, 0, len(posts))
	for _, post := range posts {
		infos = append(infos, toSavedPostInfo(post))
	}
	return infos, nil
}

func toSavedPostInfo(post *models.SavedPost) *transfer.SavedPostInfo {
	info := &transfer.SavedPostInfo{
		ID:              post.ID,
		RedditPostID:    post.RedditPostID,
		Title:           post.Title,
		URL:             post.URL,
		MediaURL:        post.MediaURL,
		ArchiveURL:      post.ArchiveURL,
		PostKind:        post.PostKind,
		Subreddit:       post.Subreddit,
		CreatedUTC:      post.CreatedUTC.Format(time.RFC3339),
		Status:          post.Status,
		RedditAccountID: post.RedditAccountID,
	}
	if post.ScheduledAt != nil {
		v := post.ScheduledAt.Format(time.RFC3339)
		info.ScheduledDate = &v
	}
	if post.PostedAt != nil {
		v := post.PostedAt.Format(time.RFC3339)
		info.PostedDate = &v
	}
	return info
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	post, err := s.pr.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	return s.pr.Remove(ctx, postID)
}

// Schedule queues the post for the dispatch job. Re-scheduling a failed
// post is the manual retry path; a post that already went out is rejected.
func (s *postService) Schedule(ctx context.Context, userID, postID int64, scheduledDate string) (time.Time, error) {
	scheduledAt, err := parseScheduledDate(scheduledDate)
	if err != nil {
		return time.Time{}, err
	}

	post, err := s.pr.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return time.Time{}, err
	}
	if post == nil {
		return time.Time{}, ErrNotFound
	}
	if post.Status == models.PostStatusPosted {
		return time.Time{}, ErrAlreadyPosted
	}

	if err := s.pr.Schedule(ctx, postID, scheduledAt); err != nil {
		return time.Time{}, err
	}
	return scheduledAt, nil
}

// PostNow submits one post to each of the chosen subreddits right away.
// Targets are independent: a failure on one never stops the rest. The post
// flips to posted once, if at least one target accepted it; with zero
// successes its status is left untouched.
func (s *postService) PostNow(ctx context.Context, userID, postID int64, subreddits []string) (*transfer.PostNowResult, error) {
	post, err := s.pr.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	account, err := s.ar.GetByID(ctx, post.RedditAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.RefreshToken == "" {
		return nil, ErrAccountNotAuthorized
	}

	creds, err := requireCredentials(ctx, s.cr)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.Decrypt(account.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}
	client := s.f.ClientFor(creds, refreshToken)

	result := &transfer.PostNowResult{}
	lastSubmissionID := ""

	for _, name := range subreddits {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		submission, err := SubmitSavedPost(ctx, client, post, name)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("%s (%v)", name, err))
			slog.Info("immediate post failed", "post", post.ID, "subreddit", name, "err", err)
			continue
		}

		result.Posted = append(result.Posted, name)
		lastSubmissionID = submission.ID
		slog.Info("immediate post succeeded", "post", post.ID, "subreddit", name, "submission", submission.ID)
	}

	if len(result.Posted) > 0 {
		if err := s.pr.MarkPosted(ctx, post.ID, lastSubmissionID, time.Now().UTC()); err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("Post '%s' successfully posted to: %s.", post.Title, strings.Join(result.Posted, ", "))
		if len(result.Failed) > 0 {
			result.Message += fmt.Sprintf(" Failed to post to: %s.", strings.Join(result.Failed, ", "))
		}
	} else {
		result.Message = fmt.Sprintf("Failed to post '%s' to any selected subreddit.", post.Title)
		if len(result.Failed) > 0 {
			result.Message += fmt.Sprintf(" Details: %s.", strings.Join(result.Failed, ", "))
		}
	}

	return result, nil
}
