package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/benask/autoposter/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.SavedPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SavedPost, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.SavedPost, error)
	ExistsByRedditID(ctx context.Context, userID int64, redditPostID string) (bool, error)
	ListByUserID(ctx context.Context, userID int64, status string) ([]*models.SavedPost, error)
	ClaimDue(ctx context.Context, now time.Time) ([]*models.SavedPost, error)
	RequeueStale(ctx context.Context, claimedBefore time.Time) (int64, error)
	MarkPosted(ctx context.Context, id int64, submissionID string, postedAt time.Time) error
	MarkFailed(ctx context.Context, id int64) error
	Schedule(ctx context.Context, id int64, scheduledAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, reddit_account_id, reddit_post_id, title, url,
	COALESCE(media_url, ''), COALESCE(archive_url, ''), post_kind, subreddit,
	created_utc, scheduled_at, posted_at, status, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.SavedPost, error) {
	var post models.SavedPost
	var scheduledAt, postedAt sql.NullTime
	err := row.Scan(&post.ID, &post.UserID, &post.RedditAccountID, &post.RedditPostID,
		&post.Title, &post.URL, &post.MediaURL, &post.ArchiveURL, &post.PostKind,
		&post.Subreddit, &post.CreatedUTC, &scheduledAt, &postedAt, &post.Status,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		post.ScheduledAt = &scheduledAt.Time
	}
	if postedAt.Valid {
		post.PostedAt = &postedAt.Time
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.SavedPost) (int64, error) {
	query := `
		INSERT INTO saved_posts (user_id, reddit_account_id, reddit_post_id, title, url,
			media_url, archive_url, post_kind, subreddit, created_utc, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.UserID, post.RedditAccountID, post.RedditPostID,
		post.Title, post.URL, post.MediaURL, post.ArchiveURL, post.PostKind, post.Subreddit,
		post.CreatedUTC, post.Status, time.Now()).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.SavedPost, error) {
	query := `SELECT ` + postColumns + ` FROM saved_posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.SavedPost, error) {
	query := `SELECT ` + postColumns + ` FROM saved_posts WHERE id = $1 AND user_id = $2`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) ExistsByRedditID(ctx context.Context, userID int64, redditPostID string) (bool, error) {
	query := `SELECT 1 FROM saved_posts WHERE user_id = $1 AND reddit_post_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, userID, redditPostID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID int64, status string) ([]*models.SavedPost, error) {
	query := `SELECT ` + postColumns + ` FROM saved_posts WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_utc DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.SavedPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ClaimDue atomically flips every due scheduled post to in_progress and
// returns the claimed rows. Concurrent dispatch runs can never claim the
// same post twice.
func (r *postRepository) ClaimDue(ctx context.Context, now time.Time) ([]*models.SavedPost, error) {
	query := `
		UPDATE saved_posts
		SET status = $1, updated_at = $2
		WHERE status = $3 AND scheduled_at <= $2
		RETURNING ` + postColumns

	rows, err := r.db.QueryContext(ctx, query, models.PostStatusInProgress, now, models.PostStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.SavedPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// RequeueStale returns in_progress posts abandoned by a crashed run to the
// scheduled state so the next run picks them up.
func (r *postRepository) RequeueStale(ctx context.Context, claimedBefore time.Time) (int64, error) {
	query := `
		UPDATE saved_posts
		SET status = $1, updated_at = $2
		WHERE status = $3 AND updated_at < $4
	`
	result, err := r.db.ExecContext(ctx, query, models.PostStatusScheduled, time.Now(), models.PostStatusInProgress, claimedBefore)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return result.RowsAffected()
}

// MarkPosted records the terminal success state. A non-empty submissionID
// replaces the stored Reddit id with the id of the new submission.
func (r *postRepository) MarkPosted(ctx context.Context, id int64, submissionID string, postedAt time.Time) error {
	query := `
		UPDATE saved_posts
		SET status = $1, posted_at = $2,
			reddit_post_id = COALESCE(NULLIF($3, ''), reddit_post_id),
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPosted, postedAt, submissionID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) MarkFailed(ctx context.Context, id int64) error {
	query := `UPDATE saved_posts SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Schedule(ctx context.Context, id int64, scheduledAt time.Time) error {
	query := `UPDATE saved_posts SET status = $1, scheduled_at = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusScheduled, scheduledAt, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_posts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
