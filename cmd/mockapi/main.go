// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command mockapi serves the CampusShare REST API from memory.
//
// It exists so the client can be exercised end to end without the real
// backend. Every account, resource and thread is lost when it exits.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/campusshare/internal/mockapi"
	"github.com/taibuivan/campusshare/internal/platform/config"
	"github.com/taibuivan/campusshare/internal/platform/constants"
)

func main() {
	cfg, err := config.LoadBackend()
	if err != nil {
		slog.Error("load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "campusshare-mockapi"))
	slog.SetDefault(log)

	// Cancelling ctx also stops the rate limiter sweep.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := mockapi.New(ctx, cfg, log)
	if err != nil {
		log.Error("build backend", slog.Any("error", err))
		os.Exit(1)
	}

	failed := make(chan error, 1)
	go func() {
		log.Info("mockapi_listening",
			slog.String("port", cfg.ServerPort),
			slog.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("mockapi_stopping", slog.Duration("grace", constants.ShutdownTimeout))
	case err := <-failed:
		log.Error("mockapi_listen_failed", slog.Any("error", err))
	}

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("mockapi_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}
}
