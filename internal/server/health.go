package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/session"
)

type (
	// HealthSrvc handles business logic for health check functionality
	HealthSrvc struct {
		sessions   *session.Manager
		categories *api.CategoriesAPI
	}

	// HealthResponse represents the response structure for health check endpoint
	HealthResponse struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Redis     bool      `json:"redis"`
		API       bool      `json:"api"`
	}
)

func NewHealthSrvc(sessions *session.Manager, categories *api.CategoriesAPI) *HealthSrvc {
	return &HealthSrvc{sessions: sessions, categories: categories}
}

func NewHealthHandler(srvc *HealthSrvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := hlog.FromRequest(r)

		response := srvc.check(ctx)

		w.Header().Set("Content-Type", "application/json")

		if response.Redis && response.API {
			logger.Debug().Msg("Healthcheck ok")
			w.WriteHeader(http.StatusOK)
		} else {
			logger.Error().Bool("redis", response.Redis).Bool("api", response.API).Msg("Healthcheck failed")
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error().Err(err).Msg("Failed to encode health check response")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}
}

func (s *HealthSrvc) check(ctx context.Context) HealthResponse {
	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	redisOk := s.sessions.Ping(checkCtx) == nil

	// The category listing is public and cheap, which makes it a usable
	// reachability probe for the upstream API.
	_, apiErr := s.categories.List(checkCtx)
	apiOk := apiErr == nil

	status := "serving"
	if !redisOk || !apiOk {
		status = "not serving"
	}
	return HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Redis:     redisOk,
		API:       apiOk,
	}
}
