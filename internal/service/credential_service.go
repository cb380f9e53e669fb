package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/transfer"
)

// CredentialService manages the singleton Reddit API credential set. Writes
// always land in the same row, so "creating" a second set overwrites the
// first.
type CredentialService interface {
	Get(ctx context.Context) (*models.Credential, error)
	Update(ctx context.Context, update *transfer.CredentialUpdate) error
}

type credentialService struct {
	cr repository.CredentialRepository
}

func NewCredentialService(cr repository.CredentialRepository) CredentialService {
	return &credentialService{cr: cr}
}

func (s *credentialService) Get(ctx context.Context) (*models.Credential, error) {
	cred, ok, err := s.cr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		// No row yet; the settings form starts empty.
		return &models.Credential{}, nil
	}
	return cred, nil
}

func (s *credentialService) Update(ctx context.Context, update *transfer.CredentialUpdate) error {
	if update.ClientID == "" || update.ClientSecret == "" {
		return errors.New("client_id and client_secret are required")
	}
	if update.RedirectURI == "" {
		return errors.New("redirect_uri is required")
	}
	if u, err := url.Parse(update.RedirectURI); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("redirect_uri must be an absolute URL")
	}

	return s.cr.Upsert(ctx, &models.Credential{
		ClientID:     update.ClientID,
		ClientSecret: update.ClientSecret,
		RedirectURI:  update.RedirectURI,
	})
}
