package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"miniblog/internal/repository"
	"miniblog/internal/service"
)

// Machine-stable error kinds. The kind plus a human-readable message is the
// whole error contract; stack traces never leave the process.
const (
	KindValidation   = "validation_error"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindInternal     = "internal_error"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, statusCode int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: kind, Message: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps sentinel errors from the repository/service layers
// onto the HTTP taxonomy. Anything unrecognized is an unexpected persistence
// failure and surfaces as 500.
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, http.StatusNotFound, KindNotFound, notFoundMessage)
	case errors.Is(err, repository.ErrDuplicate):
		// conflicts are expected and arrive rolled back; 400, never 500
		WriteError(w, http.StatusBadRequest, KindConflict, "Duplicate value for a unique field")
	case errors.Is(err, repository.ErrCategoryMissing):
		WriteError(w, http.StatusBadRequest, KindValidation, "One or more categories do not exist")
	case errors.Is(err, service.ErrNotOwner):
		WriteError(w, http.StatusForbidden, KindForbidden, "You do not own this resource")
	default:
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
	}
}
