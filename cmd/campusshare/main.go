// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command campusshare is the terminal client of CampusShare.
//
// # Startup Sequence
//
//  1. Initialize structured JSON logger (stderr, warnings only unless DEBUG).
//  2. Load configuration from environment variables.
//  3. Open the token store and wire the API client, session and pages.
//  4. Run the requested command; the session is restored first.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/campusshare/internal/platform/config"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelWarn)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled", slog.String("api_url", cfg.APIURL))
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 3. Wiring ─────────────────────────────────────────────────────────
	client, err := newApp(ctx, cfg, log, os.Stdin, os.Stdout)
	must(log, err, "build client")

	// ── 4. Command ────────────────────────────────────────────────────────
	err = newRootCommand(client).ExecuteContext(ctx)
	client.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "campusshare"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
