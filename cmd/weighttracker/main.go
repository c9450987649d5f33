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

	adaptgql "weighttracker/internal/adapter/graphql"
	adapthttp "weighttracker/internal/adapter/http"
	"weighttracker/internal/adapter/memory"
	"weighttracker/internal/adapter/nats"
	"weighttracker/internal/adapter/postgres"
	"weighttracker/internal/app"
	"weighttracker/internal/config"
	"weighttracker/internal/domain"
)

type store interface {
	domain.WeightRecordRepository
	domain.UserRepository
	domain.APILogRepository
	domain.Pinger
}

func main() {
	cfg := config.Load()

	var db store
	switch cfg.Storage {
	case config.StorageMemory:
		log.Printf("storage: in-memory")
		db = memory.New()
	default:
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = pg.Close() }()
		db = pg
	}

	userSvc := app.NewUserService(db)
	if cfg.SeedUserEmail != "" {
		name := cfg.SeedUserName
		if name == "" {
			name = cfg.SeedUserEmail
		}
		u, created, err := userSvc.EnsureUser(context.Background(), cfg.SeedUserEmail, name)
		if err != nil {
			log.Fatalf("seed user: %v", err)
		}
		if created {
			log.Printf("created user id=%d email=%s", u.ID, u.Email)
		}
	}

	var publisher domain.SyncPublisher
	if cfg.NATSURL != "" {
		p, err := nats.Connect(cfg.NATSURL, cfg.NATSSyncSubject)
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer func() { _ = p.Close() }()
		publisher = p
		log.Printf("sync: publishing to %s", cfg.NATSSyncSubject)
	}

	weightSvc := app.NewWeightService(db)
	healthSvc := app.NewHealthService(db)
	externalSvc := app.NewExternalService(db, publisher)

	gql, err := adaptgql.NewHandler(adaptgql.NewResolver(weightSvc, userSvc))
	if err != nil {
		log.Fatalf("graphql schema: %v", err)
	}

	h := adapthttp.New(weightSvc, userSvc, healthSvc, externalSvc, gql).
		WithCORSOrigins(cfg.CORSOrigins).
		WithRateLimit(cfg.ExternalRateLimit, cfg.ExternalRateBurst).
		Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
