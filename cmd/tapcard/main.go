package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/cli"
	"github.com/dmitrijs2005/tapcard/internal/client/config"
	"github.com/dmitrijs2005/tapcard/internal/client/services"
	"github.com/dmitrijs2005/tapcard/internal/client/session"
	"github.com/dmitrijs2005/tapcard/internal/client/store"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	db, err := store.OpenDB(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer db.Close()

	st, err := store.NewSQLiteStore(ctx, db, cfg.StoreSecret, logger)
	if err != nil {
		log.Fatalf("init session store: %v", err)
	}

	client := api.NewHTTPClient(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout), api.WithLogger(logger))
	sess := session.New(st, client, session.WithLogger(logger))
	client.Bind(sess, sess.HandleUnauthorized)

	profiles := services.NewProfileService(client, cfg.BatchConcurrency, logger)
	share := services.NewShareService(client, client.BaseURL())

	app := cli.NewApp(sess, profiles, share, logger)
	sess.SetNavigator(app)

	if err := sess.Initialize(ctx); err != nil {
		log.Fatalf("restore session: %v", err)
	}

	app.Run(ctx)

}
