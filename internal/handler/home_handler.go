package handlers

import (
	"net/http"
)

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"message": "Welcome to MiniBlog"}, http.StatusOK)
}

// Health reports liveness plus a cheap DB probe (table count of the public
// schema).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, http.StatusServiceUnavailable, KindInternal, "Database is unavailable")
		return
	}

	count, err := h.DB.CountTables()
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, KindInternal, "Database is unavailable")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":      "ok",
		"countTables": count,
	}, http.StatusOK)
}
