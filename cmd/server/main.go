package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/api/handlers"
	"github.com/benask/autoposter/internal/api/middleware"
	job "github.com/benask/autoposter/internal/jobs"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/benask/autoposter/internal/repository"
	"github.com/benask/autoposter/internal/service"
)

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
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		slog.Error("database is unreachable", "err", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("unhandled request error", "path", c.Path(), "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	accountRepo := repository.NewRedditAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	subredditRepo := repository.NewSubredditRepository(db)

	redditFactory := reddit.NewClientFactory(cfg.RedditUserAgent)

	var archiver service.Archiver
	r2 := service.NewR2Archive(*cfg)
	if r2.Enabled() {
		archiver = r2
	} else {
		slog.Info("media archiving disabled, R2 is not configured")
	}

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	credentialService := service.NewCredentialService(credentialRepo)
	subredditService := service.NewSubredditService(subredditRepo)
	accountService := service.NewAccountService(*cfg, credentialRepo, accountRepo, redditFactory)
	importService := service.NewImportService(*cfg, credentialRepo, accountRepo, postRepo, redditFactory, archiver)
	postService := service.NewPostService(*cfg, credentialRepo, accountRepo, postRepo, redditFactory)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/users/register", auth.Register)
	app.Post("/users/login", auth.Login)

	account := handlers.NewAccountHandler(*cfg, accountService)
	app.Get("/reddit/callback/", account.Callback)

	api := app.Group("/", authMiddleware.AuthMiddleware())

	api.Post("/users/logout", auth.Logout)

	user := handlers.NewUserHandler(userService)
	api.Get("/api/user/info", user.GetUserInfo)

	api.Post("/reddit/connect/", account.BeginConnect)
	api.Get("/reddit/connect/", account.ListConnected)
	api.Get("/reddit/accounts/api/", account.ListAccounts)
	api.Post("/reddit/accounts/:id/delete/", account.DeleteAccount)

	settings := handlers.NewSettingsHandler(credentialService, subredditService, userService)
	api.Get("/reddit/settings/api/", settings.GetCredentials)
	api.Post("/reddit/settings/api/", settings.UpdateCredentials)
	api.Get("/reddit/settings/subreddits/", settings.GetSubreddits)
	api.Post("/reddit/settings/subreddits/", settings.UpdateSubreddits)

	post := handlers.NewPostHandler(postService, importService)
	api.Post("/reddit/posts/fetch_saved/", post.FetchSaved)
	api.Get("/reddit/posts/saved/", post.ListSaved)
	api.Post("/reddit/posts/:id/delete/", post.DeletePost)
	api.Post("/reddit/posts/perform-post-now/", post.PerformPostNow)
	api.Post("/reddit/posts/schedule/", post.SchedulePost)

	dispatchJob := job.NewDispatchJob(*cfg, credentialRepo, accountRepo, postRepo, redditFactory)

	c := cron.New()
	c.AddFunc("@every 1m", dispatchJob.Run)
	c.Start()
	defer c.Stop()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			slog.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()
	slog.Info("server is running", "addr", cfg.ListenAddr)

	gracefulShutdown(app)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	slog.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		slog.Error("failed to shut down server", "err", err)
	}
}
