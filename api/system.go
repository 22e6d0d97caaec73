package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// SystemHandler serves liveness and build information. Ping, when set, checks
// the storage backend.
type SystemHandler struct {
	Ping func(ctx context.Context) error
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			logger.Warn("health: storage ping failed", slog.Any("err", err))
			writeJSON(w, healthResponse{Status: "degraded", Service: "skillswap"}, http.StatusServiceUnavailable)
			return
		}
	}
	writeJSON(w, healthResponse{Status: "ok", Service: "skillswap"}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": version, "buildTime": buildTime}, http.StatusOK)
	}
}
