package api

import (
	"context"
	"net/http"
	"time"

	"github.com/foliotrack/portfolio-service/internal/database"
	"github.com/foliotrack/portfolio-service/internal/kafka"
	"github.com/foliotrack/portfolio-service/internal/redis"
)

// Handler holds dependencies for HTTP handlers. producer and cache are
// optional; a nil value disables the corresponding integration.
type Handler struct {
	db       *database.DB
	producer *kafka.Producer
	cache    *redis.Client
}

// NewHandler creates a new Handler
func NewHandler(db *database.DB, producer *kafka.Producer, cache *redis.Client) *Handler {
	return &Handler{
		db:       db,
		producer: producer,
		cache:    cache,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  map[string]string{},
	}
	services := health["services"].(map[string]string)
	allHealthy := true

	// Check database
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			services["postgres"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			services["postgres"] = "healthy"
		}
	} else {
		services["postgres"] = "not configured"
		allHealthy = false
	}

	// Check Redis
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			services["redis"] = "unhealthy: " + err.Error()
		} else {
			services["redis"] = "healthy"
		}
	} else {
		services["redis"] = "not configured"
	}

	// Check Kafka producer
	if h.producer != nil {
		services["kafka"] = "configured"
	} else {
		services["kafka"] = "not configured"
	}

	if !allHealthy {
		health["status"] = "degraded"
	}

	respondJSON(w, http.StatusOK, health)
}

// parseDate accepts the wire format used for purchase and transaction
// dates (date only, no time component).
func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
