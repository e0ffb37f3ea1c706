package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamhq/userauth/internal/domain"
	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/pkg/httpx"
	"github.com/teamhq/userauth/pkg/slogx"
)

// PasswordHandler serves both password endpoints: change (caller supplies
// the new password) and reset (a fresh one is generated and returned once).
type PasswordHandler struct {
	UserService *service.UserService
}

// HandleChange godoc
//
//	@Summary		Change a user's password
//	@Description	Hashes the submitted password and stores it. Admins may change any account's password; other callers only their own.
//	@Tags			Passwords
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dataRequest		true	"password + target username"
//	@Success		200		{object}	statusResponse	"http, status"
//	@Failure		403		{object}	ErrorResponse	"not the account owner"
//	@Failure		404		{object}	ErrorResponse	"no such user"
//	@Router			/api/user/password/change [post].
func (h *PasswordHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if claims.Role != domain.RoleAdmin && claims.Email != req.Data.Username {
		log.Warn("password change denied", "subject", claims.Subject, "target", req.Data.Username)
		writeForbidden(w, "you may only change your own password")
		return
	}

	if err := h.UserService.ChangePassword(ctx, req.Data.Username, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("password changed", "email", req.Data.Username)
	httpx.WriteJSON(w, http.StatusOK, statusResponse{HTTP: http.StatusOK, Status: "success"})
}

// HandleReset godoc
//
//	@Summary		Reset a user's password
//	@Description	Replaces the password with a generated one and returns the plaintext exactly once. Admin-only.
//	@Tags			Passwords
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dataRequest		true	"target username"
//	@Success		200		{object}	statusResponse	"http, status, password"
//	@Failure		403		"caller is not an admin"
//	@Failure		404		{object}	ErrorResponse	"no such user"
//	@Router			/api/user/password/reset [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	password, err := h.UserService.ResetPassword(ctx, req.Data.Username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("password reset", "email", req.Data.Username, "by", httpx.UserIDFromContext(ctx))
	httpx.WriteJSON(w, http.StatusOK, statusResponse{
		HTTP:     http.StatusOK,
		Status:   "success",
		Password: password,
	})
}
