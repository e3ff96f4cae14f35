package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/spinlog/server/middleware"
	"github.com/spinlog/server/models"
)

// activityLimit caps the recent-activity feed.
const activityLimit = 100

// ReportsHandler serves the dashboard's read-only aggregates. Reads go
// straight to the store and never touch the update pipeline.
type ReportsHandler struct {
	db *sql.DB
}

func NewReportsHandler(db *sql.DB) *ReportsHandler {
	return &ReportsHandler{db: db}
}

// GetStats handles GET /api/dashboard/stats
func (h *ReportsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var stats models.StatsResponse
	err := h.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM choice_events),
			(SELECT COUNT(*) FROM choice_events WHERE status = $1),
			(SELECT COUNT(*) FROM choice_events WHERE status = $2)
	`, models.StatusAffirmed, models.StatusDeclined).Scan(
		&stats.TotalUsers, &stats.TotalEvents, &stats.Affirmed, &stats.Declined,
	)
	if err != nil {
		slog.Error("failed to query stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// GetFrequencies handles GET /api/dashboard/frequencies
func (h *ReportsHandler) GetFrequencies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT value, COUNT(*)::int
		FROM choice_events
		WHERE status = $1
		GROUP BY value
		ORDER BY value ASC
	`, models.StatusAffirmed)
	if err != nil {
		slog.Error("failed to query frequencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	buckets := []models.FrequencyBucket{}
	for rows.Next() {
		var b models.FrequencyBucket
		if err := rows.Scan(&b.Value, &b.Count); err != nil {
			slog.Error("failed to scan frequency bucket", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read frequencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, buckets)
}

// GetActivity handles GET /api/dashboard/activity
func (h *ReportsHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT u.telegram_id, u.username, u.first_name, u.last_name,
		       e.value, e.status, e.created_at
		FROM choice_events e
		JOIN users u ON u.id = e.user_id
		ORDER BY e.created_at DESC
		LIMIT $1
	`, activityLimit)
	if err != nil {
		slog.Error("failed to query activity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	entries := []models.ActivityEntry{}
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(
			&entry.TelegramID, &entry.Username, &entry.FirstName, &entry.LastName,
			&entry.Value, &entry.Status, &entry.CreatedAt,
		); err != nil {
			slog.Error("failed to scan activity entry", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read activity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
