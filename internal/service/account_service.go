package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/transfer"
	"github.com/benask/autoposter/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const stateTokenTTL = 10 * time.Minute

type AccountService interface {
	BeginConnect(ctx context.Context, userID int64) (string, error)
	Callback(ctx context.Context, code, state string) (string, error)
	List(ctx context.Context, userID int64) ([]transfer.AccountInfo, error)
	Delete(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	cfg config.Config
	cr  repository.CredentialRepository
	ar  repository.RedditAccountRepository
	f   reddit.Factory
}

func NewAccountService(cfg config.Config, cr repository.CredentialRepository, ar repository.RedditAccountRepository, f reddit.Factory) AccountService {
	return &accountService{cfg: cfg, cr: cr, ar: ar, f: f}
}

// BeginConnect builds the Reddit authorization URL. The state parameter is
// a signed token naming the initiating user, so the callback can attach the
// account without relying on an authenticated session.
func (s *accountService) BeginConnect(ctx context.Context, userID int64) (string, error) {
	creds, err := requireCredentials(ctx, s.cr)
	if err != nil {
		return "", err
	}

	nonce, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	state, err := utils.GenerateStateToken(s.cfg.SecretKey, strconv.FormatInt(userID, 10), nonce, stateTokenTTL)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return reddit.AuthCodeURL(creds, state), nil
}

func (s *accountService) Callback(ctx context.Context, code, state string) (string, error) {
	if code == "" {
		return "", errors.New("authorization code not found")
	}

	claims, err := utils.ValidateStateToken(s.cfg.SecretKey, state)
	if err != nil {
		return "", errors.New("unable to validate state")
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return "", errors.New("unable to validate state")
	}

	creds, err := requireCredentials(ctx, s.cr)
	if err != nil {
		return "", err
	}

	token, err := reddit.Exchange(ctx, creds, code)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := s.f.ClientFromToken(creds, token)
	identity, err := client.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to identify reddit account: %w", err)
	}

	encryptedAccess, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}
	encryptedRefresh := ""
	if token.RefreshToken != "" {
		encryptedRefresh, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return "", err
		}
	}

	existing, err := s.findByUsername(ctx, userID, identity.Name)
	if err != nil {
		return "", err
	}

	expiry := token.Expiry
	_, err = s.ar.Upsert(ctx, &models.RedditAccount{
		UserID:         userID,
		RedditUsername: identity.Name,
		AccessToken:    encryptedAccess,
		RefreshToken:   encryptedRefresh,
		TokenExpiry:    &expiry,
		Scope:          reddit.GrantedScope(token),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store reddit account: %w", err)
	}

	if existing != nil {
		return "Reddit account updated successfully!", nil
	}
	return "Reddit account connected successfully!", nil
}

func (s *accountService) findByUsername(ctx context.Context, userID int64, username string) (*models.RedditAccount, error) {
	accounts, err := s.ar.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if acc.RedditUsername == username {
			return acc, nil
		}
	}
	return nil, nil
}

func (s *accountService) List(ctx context.Context, userID int64) ([]transfer.AccountInfo, error) {
	accounts, err := s.ar.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting reddit accounts")
	}

	infos := make([]transfer.AccountInfo, 0, len(accounts))
	for _, acc := range accounts {
		infos = append(infos, transfer.AccountInfo{
			ID:       acc.ID,
			Username: acc.RedditUsername,
			Scope:    acc.Scope,
		})
	}
	return infos, nil
}

func (s *accountService) Delete(ctx context.Context, userID, accountID int64) error {
	acc, err := s.ar.GetByIDForUser(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if acc == nil {
		return ErrNotFound
	}
	return s.ar.Remove(ctx, accountID)
}
