// Package v1handler implements the v1 REST endpoints for the user resource.
// It decodes and validates request payloads, delegates to the user domain
// service, and maps semantic error kinds to HTTP status codes.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"userapi/internal/users"
	"userapi/pkg/logger"
	"userapi/pkg/serrors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Deps carries the collaborators the handlers need.
type Deps struct {
	// Users is the user domain service backing the endpoints.
	Users users.Service
}

// Handler serves the v1 user endpoints.
type Handler struct {
	deps     Deps
	validate *validator.Validate
}

// New creates a v1 handler with the given dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register mounts the v1 routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.CreateUser)
	mux.HandleFunc("GET /api/users", h.ListUsers)
	mux.HandleFunc("GET /api/users/{id}", h.GetUser)
	mux.HandleFunc("PUT /api/users/{id}", h.UpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", h.DeleteUser)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	// Code is the semantic error code (e.g. NOT_FOUND, CONFLICT).
	Code string `json:"code"`
	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// statusForKind maps a semantic kind to its HTTP status code. Unknown kinds
// and plain errors are treated as internal failures.
func statusForKind(k serrors.Kind) int {
	switch k {
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrConflict:
		return http.StatusConflict
	case serrors.ErrBadRequest:
		return http.StatusBadRequest
	case serrors.ErrTimeout:
		return http.StatusGatewayTimeout
	case serrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a JSON error response. Operational failures are
// logged and redacted to a generic 500; semantic errors keep their message.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := serrors.ErrInternal
	msg := "internal error"

	var sErr *serrors.Error
	if errors.As(err, &sErr) && sErr.Kind() != nil {
		if status := statusForKind(sErr.Kind()); status != http.StatusInternalServerError {
			code = sErr.Kind()
			if m := sErr.Message(); m != "" {
				msg = m
			} else {
				msg = code.Error()
			}

			writeJSON(w, status, ErrorResponse{Code: code.Error(), Message: msg})

			return
		}
	}

	logger.Error(ctx, "request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Code: code.Error(), Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
