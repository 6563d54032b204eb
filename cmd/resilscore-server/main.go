package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/config"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/server"
	"github.com/meridian-grc/resilscore/pkg/snapshot"
	"github.com/meridian-grc/resilscore/pkg/snapshot/postgres"
)

func main() {
	cfg, cfgErr := config.Load()

	log, err := buildLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Fatal("configuration error", zap.Error(cfgErr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	graph := mappings.DefaultGraph()
	assessor := assess.New(catalog.DefaultRegistry(), graph, log)
	tracker := snapshot.NewTracker(db, log)

	srv := server.New(assessor, graph, tracker, log)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	log.Info("listening", zap.String("addr", cfg.ListenAddr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown incomplete", zap.Error(err))
		}
	case err := <-errCh:
		log.Fatal("server error", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
