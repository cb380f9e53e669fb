package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/benask/autoposter/internal/models"
)

// credentialRowID pins every write to the same row, so the credential set
// behaves as a singleton: saving a "second" set overwrites the first.
const credentialRowID = 1

type CredentialRepository interface {
	Get(ctx context.Context) (*models.Credential, bool, error)
	Upsert(ctx context.Context, cred *models.Credential) error
}

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Get(ctx context.Context) (*models.Credential, bool, error) {
	query := `SELECT id, client_id, client_secret, redirect_uri, updated_at FROM reddit_api_credentials WHERE id = $1`

	var cred models.Credential
	err := r.db.QueryRowContext(ctx, query, credentialRowID).Scan(&cred.ID, &cred.ClientID, &cred.ClientSecret, &cred.RedirectURI, &cred.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &cred, true, nil
}

func (r *credentialRepository) Upsert(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO reddit_api_credentials (id, client_id, client_secret, redirect_uri, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET client_id = EXCLUDED.client_id,
			client_secret = EXCLUDED.client_secret,
			redirect_uri = EXCLUDED.redirect_uri,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, credentialRowID, cred.ClientID, cred.ClientSecret, cred.RedirectURI, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
