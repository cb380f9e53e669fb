package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	config "github.com/benask/autoposter/configs"
	job "github.com/benask/autoposter/internal/jobs"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/service"
)

// Runs one dispatch pass over due scheduled posts and exits. Meant for
// external schedulers; the server runs the same job on its own cron.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		slog.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		slog.Error("database is unreachable", "err", err)
		os.Exit(1)
	}

	credentialRepo := repository.NewCredentialRepository(db)
	accountRepo := repository.NewRedditAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	redditFactory := reddit.NewClientFactory(cfg.RedditUserAgent)

	dispatchJob := job.NewDispatchJob(*cfg, credentialRepo, accountRepo, postRepo, redditFactory)

	if err := dispatchJob.RunOnce(context.Background()); err != nil {
		if errors.Is(err, service.ErrCredentialsNotConfigured) {
			slog.Error("reddit api credentials are not configured")
			os.Exit(1)
		}
		slog.Error("dispatch run failed", "err", err)
		os.Exit(1)
	}
}
