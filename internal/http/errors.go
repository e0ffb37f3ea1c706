package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/internal/store"
	"github.com/teamhq/userauth/pkg/httpx"
	"github.com/teamhq/userauth/pkg/slogx"
)

// writeServiceError maps service errors to HTTP statuses:
// authentication failures to 401, domain errors to 400/404/409, transport
// failures to 503, and everything else (hashing or signing engine
// failures, programming errors) to an explicit 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		// No body detail: login must not reveal whether the user exists.
		w.WriteHeader(http.StatusUnauthorized)

	case errors.Is(err, service.ErrValidation):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "the request is missing required fields",
		})

	case errors.Is(err, store.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "no user with that email exists",
		})

	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "already_exists",
			ErrorDescription: "a user with that email already exists",
		})

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.Error("store call timed out", "err", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:            "service_unavailable",
			ErrorDescription: "the user store did not respond in time",
		})

	default:
		log.Error("internal error", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "internal server error",
		})
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "invalid JSON body",
	})
}

func writeForbidden(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
		Error:            "access_denied",
		ErrorDescription: desc,
	})
}
