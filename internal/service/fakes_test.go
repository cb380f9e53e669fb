package service

import (
	"context"
	"errors"
	"time"

	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"golang.org/x/oauth2"
)

// In-memory stand-ins for the repository and Reddit client interfaces.

type fakeCredentialRepo struct {
	cred *models.Credential
	err  error
}

func (f *fakeCredentialRepo) Get(ctx context.Context) (*models.Credential, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.cred == nil {
		return nil, false, nil
	}
	return f.cred, true, nil
}

func (f *fakeCredentialRepo) Upsert(ctx context.Context, cred *models.Credential) error {
	f.cred = cred
	return nil
}

type fakeAccountRepo struct {
	accounts map[int64]*models.RedditAccount
}

func newFakeAccountRepo(accounts ...*models.RedditAccount) *fakeAccountRepo {
	f := &fakeAccountRepo{accounts: make(map[int64]*models.RedditAccount)}
	for _, acc := range accounts {
		f.accounts[acc.ID] = acc
	}
	return f
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.RedditAccount, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*models.RedditAccount, error) {
	acc := f.accounts[id]
	if acc == nil || acc.UserID != userID {
		return nil, nil
	}
	return acc, nil
}

func (f *fakeAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.RedditAccount, error) {
	var out []*models.RedditAccount
	for _, acc := range f.accounts {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Upsert(ctx context.Context, acc *models.RedditAccount) (int64, error) {
	if acc.ID == 0 {
		acc.ID = int64(len(f.accounts) + 1)
	}
	f.accounts[acc.ID] = acc
	return acc.ID, nil
}

func (f *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	delete(f.accounts, id)
	return nil
}

type fakePostRepo struct {
	posts     map[int64]*models.SavedPost
	nextID    int64
	createErr error

	markedPosted []int64
	markedFailed []int64
	scheduled    map[int64]time.Time
}

func newFakePostRepo(posts ...*models.SavedPost) *fakePostRepo {
	f := &fakePostRepo{
		posts:     make(map[int64]*models.SavedPost),
		scheduled: make(map[int64]time.Time),
	}
	for _, p := range posts {
		f.posts[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.SavedPost) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return post.ID, nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.SavedPost, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*models.SavedPost, error) {
	post := f.posts[id]
	if post == nil || post.UserID != userID {
		return nil, nil
	}
	return post, nil
}

func (f *fakePostRepo) ExistsByRedditID(ctx context.Context, userID int64, redditPostID string) (bool, error) {
	for _, p := range f.posts {
		if p.UserID == userID && p.RedditPostID == redditPostID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) ListByUserID(ctx context.Context, userID int64, status string) ([]*models.SavedPost, error) {
	var out []*models.SavedPost
	for _, p := range f.posts {
		if p.UserID != userID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostRepo) ClaimDue(ctx context.Context, now time.Time) ([]*models.SavedPost, error) {
	var out []*models.SavedPost
	for _, p := range f.posts {
		if p.Status == models.PostStatusScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(now) {
			p.Status = models.PostStatusInProgress
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) RequeueStale(ctx context.Context, claimedBefore time.Time) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.Status == models.PostStatusInProgress && p.UpdatedAt.Before(claimedBefore) {
			p.Status = models.PostStatusScheduled
			n++
		}
	}
	return n, nil
}

func (f *fakePostRepo) MarkPosted(ctx context.Context, id int64, submissionID string, postedAt time.Time) error {
	post := f.posts[id]
	if post == nil {
		return errors.New("post not found")
	}
	post.Status = models.PostStatusPosted
	post.PostedAt = &postedAt
	f.markedPosted = append(f.markedPosted, id)
	return nil
}

func (f *fakePostRepo) MarkFailed(ctx context.Context, id int64) error {
	post := f.posts[id]
	if post == nil {
		return errors.New("post not found")
	}
	post.Status = models.PostStatusFailed
	f.markedFailed = append(f.markedFailed, id)
	return nil
}

func (f *fakePostRepo) Schedule(ctx context.Context, id int64, scheduledAt time.Time) error {
	post := f.posts[id]
	if post == nil {
		return errors.New("post not found")
	}
	post.Status = models.PostStatusScheduled
	post.ScheduledAt = &scheduledAt
	f.scheduled[id] = scheduledAt
	return nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[int64]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	u := f.users[id]
	return u, u != nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeSubredditRepo struct {
	lists map[int64][]string
}

func newFakeSubredditRepo() *fakeSubredditRepo {
	return &fakeSubredditRepo{lists: make(map[int64][]string)}
}

func (f *fakeSubredditRepo) GetByUserID(ctx context.Context, userID int64) ([]string, bool, error) {
	list, ok := f.lists[userID]
	return list, ok, nil
}

func (f *fakeSubredditRepo) Upsert(ctx context.Context, userID int64, subreddits []string) error {
	f.lists[userID] = subreddits
	return nil
}

// fakeRedditAPI records Submit calls and can be scripted to fail for
// particular subreddits.

type submitCall struct {
	req reddit.SubmitRequest
}

type fakeRedditAPI struct {
	identity   *reddit.Identity
	saved      []*reddit.SavedPost
	savedErr   error
	submitErrs map[string]error
	submits    []submitCall
}

func (f *fakeRedditAPI) Me(ctx context.Context) (*reddit.Identity, error) {
	if f.identity == nil {
		return nil, errors.New("no identity")
	}
	return f.identity, nil
}

func (f *fakeRedditAPI) SavedPosts(ctx context.Context, username string) ([]*reddit.SavedPost, error) {
	if f.savedErr != nil {
		return nil, f.savedErr
	}
	return f.saved, nil
}

func (f *fakeRedditAPI) Submit(ctx context.Context, req reddit.SubmitRequest) (*reddit.Submission, error) {
	f.submits = append(f.submits, submitCall{req: req})
	if err, ok := f.submitErrs[req.Subreddit]; ok {
		return nil, err
	}
	return &reddit.Submission{ID: "abc123", FullName: "t3_abc123", URL: "https://reddit.com/r/" + req.Subreddit}, nil
}

type fakeFactory struct {
	api *fakeRedditAPI
}

func (f *fakeFactory) ClientFor(creds reddit.Credentials, refreshToken string) reddit.API {
	return f.api
}

func (f *fakeFactory) ClientFromToken(creds reddit.Credentials, token *oauth2.Token) reddit.API {
	return f.api
}
