package job

import (
	"context"
	"log/slog"
	"time"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/service"
	"github.com/benask/autoposter/pkg/utils"
)

// staleClaimAfter is how long an in_progress claim may sit before it is
// treated as abandoned by a crashed run and returned to the queue.
const staleClaimAfter = 15 * time.Minute

// DispatchJob moves due, scheduled posts to a terminal state: it claims
// them atomically, submits each one to its origin subreddit and records
// posted or failed per post. Failures are isolated per post; only missing
// credentials abort a run. A failed post is never retried by the job
// itself — re-scheduling it is the manual path back into the queue.
type DispatchJob struct {
	cfg config.Config
	cr  repository.CredentialRepository
	ar  repository.RedditAccountRepository
	pr  repository.PostRepository
	f   reddit.Factory
}

func NewDispatchJob(cfg config.Config, cr repository.CredentialRepository, ar repository.RedditAccountRepository, pr repository.PostRepository, f reddit.Factory) *DispatchJob {
	return &DispatchJob{cfg: cfg, cr: cr, ar: ar, pr: pr, f: f}
}

// Run is the cron entrypoint; errors are logged, not returned.
func (j *DispatchJob) Run() {
	if err := j.RunOnce(context.Background()); err != nil {
		slog.Error("dispatch run failed", "err", err)
	}
}

// RunOnce performs a single dispatch pass. It returns an error only for
// fatal configuration problems, before any row is touched.
func (j *DispatchJob) RunOnce(ctx context.Context) error {
	creds, err := j.loadCredentials(ctx)
	if err != nil {
		return err
	}

	requeued, err := j.pr.RequeueStale(ctx, time.Now().Add(-staleClaimAfter))
	if err != nil {
		slog.Error("failed to requeue stale claims", "err", err)
	} else if requeued > 0 {
		slog.Info("requeued stale in_progress posts", "count", requeued)
	}

	now := time.Now().UTC()
	posts, err := j.pr.ClaimDue(ctx, now)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		slog.Info("no scheduled posts are due")
		return nil
	}

	slog.Info("dispatching due posts", "count", len(posts))
	for _, post := range posts {
		j.dispatchOne(ctx, creds, post)
	}

	slog.Info("scheduled post processing complete")
	return nil
}

// loadCredentials reads the credential singleton once per run and threads
// the value through the rest of the pass.
func (j *DispatchJob) loadCredentials(ctx context.Context) (reddit.Credentials, error) {
	cred, ok, err := j.cr.Get(ctx)
	if err != nil {
		return reddit.Credentials{}, err
	}
	if !ok {
		return reddit.Credentials{}, service.ErrCredentialsNotConfigured
	}

	creds := reddit.Credentials{
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		RedirectURI:  cred.RedirectURI,
	}
	if !creds.Complete() {
		return reddit.Credentials{}, service.ErrCredentialsNotConfigured
	}
	return creds, nil
}

func (j *DispatchJob) dispatchOne(ctx context.Context, creds reddit.Credentials, post *models.SavedPost) {
	account, err := j.ar.GetByID(ctx, post.RedditAccountID)
	if err != nil || account == nil {
		slog.Warn("skipping post: reddit account missing", "post", post.ID, "err", err)
		j.markFailed(ctx, post.ID)
		return
	}

	if account.RefreshToken == "" {
		slog.Warn("skipping post: no refresh token", "post", post.ID, "account", account.RedditUsername)
		j.markFailed(ctx, post.ID)
		return
	}

	if post.Subreddit == "" {
		slog.Warn("skipping post: no target subreddit", "post", post.ID)
		j.markFailed(ctx, post.ID)
		return
	}

	refreshToken, err := utils.Decrypt(account.RefreshToken, []byte(j.cfg.SecretKey))
	if err != nil {
		slog.Error("failed to decrypt refresh token", "post", post.ID, "err", err)
		j.markFailed(ctx, post.ID)
		return
	}

	client := j.f.ClientFor(creds, refreshToken)

	submission, err := service.SubmitSavedPost(ctx, client, post, post.Subreddit)
	if err != nil {
		slog.Error("failed to submit post", "post", post.ID, "subreddit", post.Subreddit, "err", err)
		j.markFailed(ctx, post.ID)
		return
	}

	if err := j.pr.MarkPosted(ctx, post.ID, submission.ID, time.Now().UTC()); err != nil {
		slog.Error("failed to mark post as posted", "post", post.ID, "err", err)
		return
	}

	slog.Info("posted scheduled item", "post", post.ID, "subreddit", post.Subreddit, "submission", submission.ID)
}

func (j *DispatchJob) markFailed(ctx context.Context, postID int64) {
	if err := j.pr.MarkFailed(ctx, postID); err != nil {
		slog.Error("failed to mark post as failed", "post", postID, "err", err)
	}
}
