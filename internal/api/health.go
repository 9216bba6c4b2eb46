package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a comprehensive health check response
type HealthCheckResponse struct {
	Status        HealthStatus           `json:"status"`
	Timestamp     string                 `json:"timestamp"`
	EngineVersion string                 `json:"engine_version"`
	GitCommit     string                 `json:"git_commit,omitempty"`
	BuildTime     string                 `json:"build_time,omitempty"`
	Uptime        string                 `json:"uptime"`
	Checks        map[string]HealthCheck `json:"checks"`
	System        SystemInfo             `json:"system"`
	RequestID     string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked string       `json:"last_checked"`
	Duration    string       `json:"duration,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	MemoryAlloc   uint64 `json:"memory_alloc_bytes"`
	MemoryTotal   uint64 `json:"memory_total_bytes"`
	MemorySys     uint64 `json:"memory_sys_bytes"`
	GCCycles      uint32 `json:"gc_cycles"`
}

// handleHealthCheck provides comprehensive health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	checks := make(map[string]HealthCheck)
	overallStatus := HealthStatusHealthy

	gameCheck := s.checkGamesHealth()
	checks["games"] = gameCheck
	if gameCheck.Status != HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	dbCheck := s.checkDatabaseHealth()
	checks["database"] = dbCheck
	if dbCheck.Status == HealthStatusUnhealthy {
		overallStatus = HealthStatusUnhealthy
	} else if dbCheck.Status == HealthStatusDegraded && overallStatus == HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	jackpotCheck := s.checkJackpotHealth()
	checks["jackpot"] = jackpotCheck
	if jackpotCheck.Status != HealthStatusHealthy && overallStatus == HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	response := HealthCheckResponse{
		Status:        overallStatus,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
		Uptime:        time.Since(s.startTime).String(),
		Checks:        checks,
		System:        getSystemInfo(),
		RequestID:     requestID,
	}

	statusCode := http.StatusOK
	if overallStatus == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, statusCode, response)
}

// checkGamesHealth verifies game engines are registered and playable
func (s *Server) checkGamesHealth() HealthCheck {
	start := time.Now()

	specs := s.registry.List()
	if len(specs) == 0 {
		return HealthCheck{
			Status:      HealthStatusUnhealthy,
			Message:     "No games registered",
			LastChecked: time.Now().UTC().Format(time.RFC3339),
			Duration:    time.Since(start).String(),
		}
	}

	return HealthCheck{
		Status:      HealthStatusHealthy,
		Message:     fmt.Sprintf("%d games available", len(specs)),
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// checkDatabaseHealth verifies database connectivity
func (s *Server) checkDatabaseHealth() HealthCheck {
	start := time.Now()

	if s.db == nil {
		return HealthCheck{
			Status:      HealthStatusDegraded,
			Message:     "Database not configured",
			LastChecked: time.Now().UTC().Format(time.RFC3339),
			Duration:    time.Since(start).String(),
		}
	}

	if _, err := s.db.Balance(); err != nil {
		return HealthCheck{
			Status:      HealthStatusUnhealthy,
			Message:     fmt.Sprintf("Database error: %v", err),
			LastChecked: time.Now().UTC().Format(time.RFC3339),
			Duration:    time.Since(start).String(),
		}
	}

	return HealthCheck{
		Status:      HealthStatusHealthy,
		Message:     "Database accessible",
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// checkJackpotHealth verifies the progressive pool is initialized
func (s *Server) checkJackpotHealth() HealthCheck {
	start := time.Now()

	if s.jackpot == nil {
		return HealthCheck{
			Status:      HealthStatusDegraded,
			Message:     "Jackpot pool not initialized",
			LastChecked: time.Now().UTC().Format(time.RFC3339),
			Duration:    time.Since(start).String(),
		}
	}

	return HealthCheck{
		Status:      HealthStatusHealthy,
		Message:     fmt.Sprintf("Pool at %d", s.jackpot.Amount()),
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// getSystemInfo collects current system information
func getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		MemoryAlloc:   m.Alloc,
		MemoryTotal:   m.TotalAlloc,
		MemorySys:     m.Sys,
		GCCycles:      m.NumGC,
	}
}

// handleReadiness provides readiness probe endpoint
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	ready := true
	message := "Ready"

	if len(s.registry.List()) == 0 {
		ready = false
		message = "No games available"
	}
	if s.db == nil {
		ready = false
		message = "Database not initialized"
	}

	response := map[string]any{
		"ready":          ready,
		"message":        message,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"request_id":     requestID,
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}
	s.writeJSON(w, statusCode, response)
}

// handleLiveness provides liveness probe endpoint
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	response := map[string]any{
		"alive":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"uptime":         time.Since(s.startTime).String(),
		"request_id":     requestID,
	}
	s.writeJSON(w, http.StatusOK, response)
}
