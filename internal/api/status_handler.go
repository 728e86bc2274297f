package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"knowledgeagent/internal/api/shared"
	"knowledgeagent/internal/config"
)

// serviceName identifies this backend in status responses.
const serviceName = "knowledge-agent-api"

// statusPingTimeout bounds the database reachability check so a hung
// database cannot stall the status endpoint.
const statusPingTimeout = 5 * time.Second

// StatusResponse represents the response data for the status endpoint.
type StatusResponse struct {
	Service          string `json:"service"`
	Environment      string `json:"environment"`
	Database         string `json:"database"`
	MigrationVersion int64  `json:"migration_version,omitempty"`
}

// MigrationVersionFunc reports the current schema migration version.
type MigrationVersionFunc func(db *sql.DB) (int64, error)

// StatusHandler handles service status requests.
type StatusHandler struct {
	cfg              *config.Config
	db               *sql.DB
	migrationVersion MigrationVersionFunc
	logger           *slog.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(cfg *config.Config, db *sql.DB, migrationVersion MigrationVersionFunc, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		cfg:              cfg,
		db:               db,
		migrationVersion: migrationVersion,
		logger:           logger.With("component", "status_handler"),
	}
}

// Status handles GET /api/status requests. It reports the service identity,
// the active environment, and database reachability; the migration version
// is included when the database is reachable.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Service:     serviceName,
		Environment: h.cfg.Server.Environment,
		Database:    "ok",
	}

	ctx, cancel := context.WithTimeout(r.Context(), statusPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("database ping failed", "error", err)
		resp.Database = "unreachable"
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, resp)
		return
	}

	if h.migrationVersion != nil {
		version, err := h.migrationVersion(h.db)
		if err != nil {
			h.logger.Warn("failed to read migration version", "error", err)
		} else {
			resp.MigrationVersion = version
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
