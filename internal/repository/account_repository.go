package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/benask/autoposter/internal/models"
)

type RedditAccountRepository interface {
	GetByID(ctx context.Context, id int64) (*models.RedditAccount, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.RedditAccount, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.RedditAccount, error)
	Upsert(ctx context.Context, acc *models.RedditAccount) (int64, error)
	Remove(ctx context.Context, id int64) error
}

type redditAccountRepository struct {
	db *sql.DB
}

func NewRedditAccountRepository(db *sql.DB) RedditAccountRepository {
	return &redditAccountRepository{db: db}
}

const accountColumns = `id, user_id, reddit_username, COALESCE(access_token, ''), COALESCE(refresh_token, ''), token_expiry, COALESCE(scope, ''), created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*models.RedditAccount, error) {
	var acc models.RedditAccount
	var expiry sql.NullTime
	err := row.Scan(&acc.ID, &acc.UserID, &acc.RedditUsername, &acc.AccessToken, &acc.RefreshToken, &expiry, &acc.Scope, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		acc.TokenExpiry = &expiry.Time
	}
	return &acc, nil
}

func (r *redditAccountRepository) GetByID(ctx context.Context, id int64) (*models.RedditAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM reddit_accounts WHERE id = $1`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return acc, nil
}

func (r *redditAccountRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.RedditAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM reddit_accounts WHERE id = $1 AND user_id = $2`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return acc, nil
}

func (r *redditAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.RedditAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM reddit_accounts WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.RedditAccount
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// Upsert inserts a newly linked account or, when the same user reconnects
// the same Reddit username, refreshes the stored tokens in place.
func (r *redditAccountRepository) Upsert(ctx context.Context, acc *models.RedditAccount) (int64, error) {
	query := `
		INSERT INTO reddit_accounts (user_id, reddit_username, access_token, refresh_token, token_expiry, scope, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $7)
		ON CONFLICT (user_id, reddit_username) DO UPDATE
		SET access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, reddit_accounts.refresh_token),
			token_expiry = EXCLUDED.token_expiry,
			scope = EXCLUDED.scope,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	var expiry sql.NullTime
	if acc.TokenExpiry != nil {
		expiry = sql.NullTime{Time: *acc.TokenExpiry, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query, acc.UserID, acc.RedditUsername, acc.AccessToken, acc.RefreshToken, expiry, acc.Scope, time.Now()).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *redditAccountRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reddit_accounts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
