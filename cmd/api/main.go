package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appli-farm/applifarm-backend/config"
	"github.com/appli-farm/applifarm-backend/internal/auth"
	"github.com/appli-farm/applifarm-backend/internal/bootstrap"
	cronjob "github.com/appli-farm/applifarm-backend/internal/engagement/cron"
	engstore "github.com/appli-farm/applifarm-backend/internal/engagement/store"
	"github.com/appli-farm/applifarm-backend/internal/media"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	if authClient == nil {
		log.Println("Firebase disabled, using header-based dev identities")
	}

	presigner, err := media.NewPresigner(ctx, &cfg.S3)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	if presigner == nil {
		log.Println("S3 disabled, image uploads unavailable")
	}

	scheduler := cronjob.NewScheduler(engstore.NewPostgresStore(db))
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "applifarm-backend",
		Version:     cfg.App.Version,
		DB:          db,
		Redis:       rdb,
		AuthClient:  authClient,
		Presigner:   presigner,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
