package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamhq/userauth/internal/domain"
	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/pkg/httpx"
	"github.com/teamhq/userauth/pkg/slogx"
)

type UpdateHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Update a user account
//	@Description	Updates name and email, matching by id. Admins may update any account; other callers only their own.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dataRequest		true	"Updated fields"
//	@Success		200		{object}	statusResponse	"http, status"
//	@Failure		403		{object}	ErrorResponse	"not the account owner"
//	@Failure		404		{object}	ErrorResponse	"no such user"
//	@Router			/api/user/update [post].
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	if claims.Role != domain.RoleAdmin && claims.Subject != req.Data.ID {
		log.Warn("update denied", "subject", claims.Subject, "target", req.Data.ID)
		writeForbidden(w, "you may only update your own account")
		return
	}

	err := h.UserService.Update(ctx, service.UpdateUserInput{
		ID:        req.Data.ID,
		FirstName: req.Data.FirstName,
		LastName:  req.Data.LastName,
		Email:     req.Data.Username,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, statusResponse{HTTP: http.StatusOK, Status: "success"})
}
