package service

import (
	"context"
	"strings"

	"github.com/benask/autoposter/internal/repository"
)

type SubredditService interface {
	Get(ctx context.Context, userID int64) ([]string, error)
	Replace(ctx context.Context, userID int64, subreddits []string) error
}

type subredditService struct {
	sr repository.SubredditRepository
}

func NewSubredditService(sr repository.SubredditRepository) SubredditService {
	return &subredditService{sr: sr}
}

// Get creates the setting lazily on first access.
func (s *subredditService) Get(ctx context.Context, userID int64) ([]string, error) {
	subreddits, ok, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.sr.Upsert(ctx, userID, []string{}); err != nil {
			return nil, err
		}
		return []string{}, nil
	}
	if subreddits == nil {
		subreddits = []string{}
	}
	return subreddits, nil
}

// Replace normalizes the names and overwrites the stored list in full,
// keeping the caller's ordering.
func (s *subredditService) Replace(ctx context.Context, userID int64, subreddits []string) error {
	normalized := make([]string, 0, len(subreddits))
	for _, name := range subreddits {
		name = strings.TrimSpace(name)
		name = strings.TrimPrefix(name, "/r/")
		name = strings.TrimPrefix(name, "r/")
		if name == "" {
			continue
		}
		normalized = append(normalized, name)
	}
	return s.sr.Upsert(ctx, userID, normalized)
}
