package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padhusmiler/mstex/internal/config"
	"github.com/padhusmiler/mstex/internal/logger"
	"github.com/padhusmiler/mstex/internal/mockapi"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	seed := flag.Bool("seed", true, "load development seed data")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, flush := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, File: cfg.Log.File})
	defer flush()

	store := mockapi.NewStore()
	if *seed {
		mockapi.Seed(store)
		log.Info("seed data loaded")
	}

	srv := &http.Server{
		Addr:         cfg.MockAPI.Addr,
		Handler:      mockapi.New(store, cfg.MockAPI.JWTSecret, cfg.MockAPI.UploadDir, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("mock backend listening", zap.String("addr", cfg.MockAPI.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}
