package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"
)

type SubredditRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]string, bool, error)
	Upsert(ctx context.Context, userID int64, subreddits []string) error
}

type subredditRepository struct {
	db *sql.DB
}

func NewSubredditRepository(db *sql.DB) SubredditRepository {
	return &subredditRepository{db: db}
}

func (r *subredditRepository) GetByUserID(ctx context.Context, userID int64) ([]string, bool, error) {
	query := `SELECT subreddits FROM subreddit_settings WHERE user_id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	var subreddits []string
	if err := json.Unmarshal(raw, &subreddits); err != nil {
		slog.Info(err.Error())
		return nil, false, err
	}
	return subreddits, true, nil
}

// Upsert replaces the user's list wholesale; there is no incremental diffing.
func (r *subredditRepository) Upsert(ctx context.Context, userID int64, subreddits []string) error {
	raw, err := json.Marshal(subreddits)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	query := `
		INSERT INTO subreddit_settings (user_id, subreddits, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET subreddits = EXCLUDED.subreddits,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, userID, raw, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
