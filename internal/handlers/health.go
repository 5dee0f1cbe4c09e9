// Package handlers provides HTTP handlers for the goUserRegistry service.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/chybatronik/goUserRegistry/internal/errors"
	"github.com/chybatronik/goUserRegistry/internal/logging"
)

// HealthCheckResponse represents the structured health check response format
type HealthCheckResponse struct {
	Status        string                 `json:"status"`    // healthy|unhealthy
	Timestamp     int64                  `json:"timestamp"` // Unix timestamp
	Service       string                 `json:"service"`
	Version       string                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Checks        map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents individual health check result with timing
type HealthCheck struct {
	Status         string            `json:"status"`
	ResponseTimeMs int64             `json:"response_time_ms"`
	Error          string            `json:"error,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

// HealthChecker interface for health check components
type HealthChecker interface {
	CheckHealth(ctx context.Context) HealthCheck
	Name() string
}

// HealthHandler provides health check functionality with performance metrics
type HealthHandler struct {
	checkers  []HealthChecker
	startTime time.Time
	version   string
	service   string
	mu        sync.RWMutex
	logger    *logging.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version string, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{
		checkers:  make([]HealthChecker, 0),
		startTime: time.Now(),
		version:   version,
		service:   service,
		logger:    logger,
	}
}

// AddChecker adds a health checker to the handler
func (h *HealthHandler) AddChecker(checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// ServeHTTP handles health check requests. ?ping=true skips the checkers.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errors.WriteMethodNotAllowed(w, http.MethodGet)
		return
	}

	start := time.Now()

	if r.URL.Query().Get("ping") == "true" {
		errors.WriteJSON(w, http.StatusOK, map[string]string{
			"status": logging.StatusOK,
			"ping":   "pong",
		})
		return
	}

	response := HealthCheckResponse{
		Timestamp:     time.Now().Unix(),
		Service:       h.service,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        make(map[string]HealthCheck),
	}

	h.mu.RLock()
	checkers := make([]HealthChecker, len(h.checkers))
	copy(checkers, h.checkers)
	h.mu.RUnlock()

	allHealthy := true
	for _, checker := range checkers {
		healthCheck := checker.CheckHealth(r.Context())
		response.Checks[checker.Name()] = healthCheck

		if healthCheck.Status != logging.StatusHealthy {
			allHealthy = false
			h.logger.HealthCheck("health check failed",
				logging.FieldCheckName, checker.Name(),
				logging.FieldCheckStatus, healthCheck.Status,
				logging.FieldError, healthCheck.Error,
			)
		}
	}

	statusCode := http.StatusOK
	response.Status = logging.StatusHealthy
	if !allHealthy {
		statusCode = http.StatusServiceUnavailable
		response.Status = logging.StatusUnhealthy
	}

	h.logger.HealthCheck("health check completed",
		logging.FieldCheckStatus, response.Status,
		logging.FieldResponseTime, time.Since(start).Milliseconds(),
	)

	if err := errors.WriteJSON(w, statusCode, response); err != nil {
		h.logger.Error("failed to encode health check response", logging.FieldError, err)
	}
}

// UserCounter is implemented by the user store.
type UserCounter interface {
	Count() int
}

// StoreHealthChecker reports the in-memory store as healthy along with its
// current size.
type StoreHealthChecker struct {
	store  UserCounter
	logger *logging.Logger
}

// NewStoreHealthChecker creates a new store health checker
func NewStoreHealthChecker(store UserCounter, logger *logging.Logger) *StoreHealthChecker {
	return &StoreHealthChecker{
		store:  store,
		logger: logger,
	}
}

// Name returns the checker name
func (s *StoreHealthChecker) Name() string {
	return "store"
}

// CheckHealth reads the store size with timing
func (s *StoreHealthChecker) CheckHealth(ctx context.Context) HealthCheck {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return HealthCheck{
			Status: logging.StatusUnhealthy,
			Error:  err.Error(),
		}
	}

	count := s.store.Count()
	responseTime := time.Since(start).Milliseconds()

	s.logger.Debug("store health check successful",
		logging.FieldUserCount, count,
		logging.FieldResponseTime, responseTime,
	)

	return HealthCheck{
		Status:         logging.StatusHealthy,
		ResponseTimeMs: responseTime,
		Details: map[string]string{
			"users": strconv.Itoa(count),
		},
	}
}
