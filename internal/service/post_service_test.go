package service

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func testConfig() config.Config {
	return config.Config{SecretKey: testSecretKey}
}

func encryptedToken(t *testing.T, plaintext string) string {
	t.Helper()
	enc, err := utils.Encrypt([]byte(plaintext), []byte(testSecretKey))
	require.NoError(t, err)
	return enc
}

func testCredential() *models.Credential {
	return &models.Credential{
		ID:           1,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://app.example.com/reddit/callback/",
	}
}

func TestPostNowPartialSuccess(t *testing.T) {
	post := &models.SavedPost{
		ID:              10,
		UserID:          1,
		RedditAccountID: 5,
		RedditPostID:    "abc",
		Title:           "A title",
		URL:             "https://example.com/article",
		PostKind:        models.PostKindLink,
		Status:          models.PostStatusPending,
	}
	pr := newFakePostRepo(post)
	ar := newFakeAccountRepo(&models.RedditAccount{
		ID: 5, UserID: 1, RedditUsername: "alice",
		RefreshToken: encryptedToken(t, "refresh"),
	})
	api := &fakeRedditAPI{submitErrs: map[string]error{"badplace": errors.New("SUBREDDIT_NOEXIST")}}

	s := NewPostService(testConfig(), &fakeCredentialRepo{cred: testCredential()}, ar, pr, &fakeFactory{api: api})

	result, err := s.PostNow(context.Background(), 1, 10, []string{"golang", "badplace"})
	require.NoError(t, err)

	assert.Equal(t, []string{"golang"}, result.Posted)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0], "badplace")
	assert.Contains(t, result.Message, "successfully posted to: golang")
	assert.Contains(t, result.Message, "Failed to post to:")

	assert.Equal(t, models.PostStatusPosted, post.Status)
	assert.Len(t, api.submits, 2)
}

func TestPostNowAllTargetsFail(t *testing.T) {
	post := &models.SavedPost{
		ID: 10, UserID: 1, RedditAccountID: 5,
		Title: "A title", URL: "https://example.com",
		PostKind: models.PostKindLink, Status: models.PostStatusPending,
	}
	pr := newFakePostRepo(post)
	ar := newFakeAccountRepo(&models.RedditAccount{
		ID: 5, UserID: 1, RefreshToken: encryptedToken(t, "refresh"),
	})
	api := &fakeRedditAPI{submitErrs: map[string]error{"one": errors.New("boom"), "two": errors.New("boom")}}

	s := NewPostService(testConfig(), &fakeCredentialRepo{cred: testCredential()}, ar, pr, &fakeFactory{api: api})

	result, err := s.PostNow(context.Background(), 1, 10, []string{"one", "two"})
	require.NoError(t, err)

	assert.Empty(t, result.Posted)
	assert.Len(t, result.Failed, 2)
	assert.Contains(t, result.Message, "Failed to post 'A title' to any selected subreddit")

	// zero successes leave the stored status alone
	assert.Equal(t, models.PostStatusPending, post.Status)
	assert.Empty(t, pr.markedPosted)
}

func TestPostNowWithoutRefreshToken(t *testing.T) {
	post := &models.SavedPost{ID: 10, UserID: 1, RedditAccountID: 5, PostKind: models.PostKindLink}
	pr := newFakePostRepo(post)
	ar := newFakeAccountRepo(&models.RedditAccount{ID: 5, UserID: 1})
	api := &fakeRedditAPI{}

	s := NewPostService(testConfig(), &fakeCredentialRepo{cred: testCredential()}, ar, pr, &fakeFactory{api: api})

	_, err := s.PostNow(context.Background(), 1, 10, []string{"golang"})
	assert.ErrorIs(t, err, ErrAccountNotAuthorized)
	assert.Empty(t, api.submits)
}

func TestPostNowUnknownPost(t *testing.T) {
	s := NewPostService(testConfig(), &fakeCredentialRepo{cred: testCredential()},
		newFakeAccountRepo(), newFakePostRepo(), &fakeFactory{api: &fakeRedditAPI{}})

	_, err := s.PostNow(context.Background(), 1, 99, []string{"golang"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleRejectsPostedItem(t *testing.T) {
	post := &models.SavedPost{ID: 3, UserID: 1, Status: models.PostStatusPosted}
	pr := newFakePostRepo(post)

	s := NewPostService(testConfig(), &fakeCredentialRepo{}, newFakeAccountRepo(), pr, &fakeFactory{api: &fakeRedditAPI{}})

	_, err := s.Schedule(context.Background(), 1, 3, "2026-09-01T10:00:00Z")
	assert.ErrorIs(t, err, ErrAlreadyPosted)
	assert.Empty(t, pr.scheduled)
}

func TestScheduleFailedPostRequeues(t *testing.T) {
	post := &models.SavedPost{ID: 3, UserID: 1, Status: models.PostStatusFailed}
	pr := newFakePostRepo(post)

	s := NewPostService(testConfig(), &fakeCredentialRepo{}, newFakeAccountRepo(), pr, &fakeFactory{api: &fakeRedditAPI{}})

	when, err := s.Schedule(context.Background(), 1, 3, "2026-09-01T10:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), when)
	assert.Equal(t, models.PostStatusScheduled, post.Status)
}

func TestScheduleInvalidDate(t *testing.T) {
	pr := newFakePostRepo(&models.SavedPost{ID: 3, UserID: 1})
	s := NewPostService(testConfig(), &fakeCredentialRepo{}, newFakeAccountRepo(), pr, &fakeFactory{api: &fakeRedditAPI{}})

	_, err := s.Schedule(context.Background(), 1, 3, "tomorrow at noon")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestListFiltersByStatus(t *testing.T) {
	pr := newFakePostRepo(
		&models.SavedPost{ID: 1, UserID: 1, Status: models.PostStatusPending},
		&models.SavedPost{ID: 2, UserID: 1, Status: models.PostStatusPosted},
		&models.SavedPost{ID: 3, UserID: 2, Status: models.PostStatusPending},
	)
	s := NewPostService(testConfig(), &fakeCredentialRepo{}, newFakeAccountRepo(), pr, &fakeFactory{api: &fakeRedditAPI{}})

	all, err := s.List(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := s.List(context.Background(), 1, models.PostStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].ID)
}

func TestRemoveRequiresOwnership(t *testing.T) {
	pr := newFakePostRepo(&models.SavedPost{ID: 1, UserID: 2})
	s := NewPostService(testConfig(), &fakeCredentialRepo{}, newFakeAccountRepo(), pr, &fakeFactory{api: &fakeRedditAPI{}})

	err := s.Remove(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, pr.posts, 1)
}
