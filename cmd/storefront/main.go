package main

import (
	"context"
	"log"
	"os"

	"github.com/apotekhub/storefront/internal/api"
	"github.com/apotekhub/storefront/internal/cli"
	"github.com/apotekhub/storefront/internal/config"
	"github.com/apotekhub/storefront/internal/logging"
	"github.com/apotekhub/storefront/internal/session"
	"github.com/apotekhub/storefront/internal/store"

	_ "modernc.org/sqlite"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	logger := logging.NewDefault(os.Stderr, cfg.LogLevel)

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing local database: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := store.NewSQLiteRepository(db)

	// The session store supplies the bearer credential to the API client,
	// and the client reports authorization rejections back to the store.
	// Both halves are wired before the first request goes out.
	var sess *session.Store
	client := api.NewHTTPClient(cfg.APIBaseURL,
		func() string { return sess.Credential() },
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
		api.WithAuthRejectedHook(func() { sess.HandleAuthRejected() }),
	)
	sess = session.New(repo, client, logger)

	// Resolve the persisted credential before any view renders. This is
	// the only moment the session may be in its loading state.
	if err := sess.Initialize(ctx); err != nil {
		logger.Warn(ctx, "session initialization failed", "error", err)
	}

	app := cli.NewApp(cfg, logger, client, sess)
	app.Run(ctx)
}
