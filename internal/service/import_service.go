package service

import (
	"context"
	"fmt"
	"log/slog"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/transfer"
	"github.com/benask/autoposter/pkg/utils"
)

// ImportService pulls a linked account's saved listing from Reddit and
// upserts it into the post queue.
type ImportService interface {
	FetchSaved(ctx context.Context, userID, accountID int64) (*transfer.ImportResult, error)
}

type importService struct {
	cfg     config.Config
	cr      repository.CredentialRepository
	ar      repository.RedditAccountRepository
	pr      repository.PostRepository
	f       reddit.Factory
	archive Archiver // nil when media archiving is not configured
}

func NewImportService(cfg config.Config, cr repository.CredentialRepository, ar repository.RedditAccountRepository, pr repository.PostRepository, f reddit.Factory, archive Archiver) ImportService {
	return &importService{cfg: cfg, cr: cr, ar: ar, pr: pr, f: f, archive: archive}
}

// FetchSaved imports the account's full saved listing. An already-imported
// reddit_post_id counts as updated and is left untouched. Only a failure of
// the listing fetch itself aborts the operation; individual items that fail
// to insert are logged and skipped.
func (s *importService) FetchSaved(ctx context.Context, userID, accountID int64) (*transfer.ImportResult, error) {
	creds, err := requireCredentials(ctx, s.cr)
	if err != nil {
		return nil, err
	}

	account, err := s.ar.GetByIDForUser(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}

	if account.RefreshToken == "" {
		return nil, ErrFetchDenied
	}
	refreshToken, err := utils.Decrypt(account.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	client := s.f.ClientFor(creds, refreshToken)

	items, err := client.SavedPosts(ctx, account.RedditUsername)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrFetchDenied, err)
	}

	result := &transfer.ImportResult{}
	for _, item := range items {
		exists, err := s.pr.ExistsByRedditID(ctx, userID, item.ID)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		if exists {
			result.UpdatedPostsCount++
			continue
		}

		kind, mediaURL := item.Classify()

		archiveURL := ""
		if s.archive != nil && mediaURL != "" {
			archiveURL, err = s.archive.Archive(ctx, userID, item.ID, mediaURL)
			if err != nil {
				slog.Info("media archive failed", "post", item.ID, "err", err)
				archiveURL = ""
			}
		}

		_, err = s.pr.Create(ctx, &models.SavedPost{
			UserID:          userID,
			RedditAccountID: account.ID,
			RedditPostID:    item.ID,
			Title:           item.Title,
			URL:             item.URL,
			MediaURL:        mediaURL,
			ArchiveURL:      archiveURL,
			PostKind:        kind,
			Subreddit:       item.Subreddit,
			CreatedUTC:      item.Created(),
			Status:          models.PostStatusPending,
		})
		if err != nil {
			slog.Info("failed to store saved post", "post", item.ID, "err", err)
			continue
		}
		result.NewPostsCount++
	}

	return result, nil
}
