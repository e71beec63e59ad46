// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/campusshare/internal/platform/respond"
)

// HealthDependencies lists the checks behind GET /ready.
type HealthDependencies struct {
	// CheckStore reports whether the in-memory store accepts calls.
	CheckStore func() error
}

// NewHealthHandlers returns the /health and /ready handlers.
//
// /health answers 200 while the process runs. /ready answers 503 with the
// failing check when the store is unavailable.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	started := time.Now()

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]any{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(started).Seconds()),
		})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		checks := map[string]string{}
		if deps.CheckStore != nil {
			checks["store"] = "ok"
			if err := deps.CheckStore(); err != nil {
				checks["store"] = err.Error()
				logger.WarnContext(request.Context(), "readiness_check_failed",
					slog.String("dependency", "store"), slog.Any("error", err))
				respond.JSON(writer, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "checks": checks})
				return
			}
		}
		respond.OK(writer, map[string]any{"status": "ready", "checks": checks})
	}

	return liveness, readiness
}
