package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/pkg/httpx"
	"github.com/teamhq/userauth/pkg/slogx"
)

type DeleteHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Delete a user account
//	@Description	Hard-deletes the account matching the given username. Admin-only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dataRequest		true	"target username"
//	@Success		200		{object}	statusResponse	"http, status"
//	@Failure		403		"caller is not an admin"
//	@Failure		404		{object}	ErrorResponse	"no such user"
//	@Router			/api/user/delete [post].
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.UserService.Delete(ctx, req.Data.Username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("user deleted", "email", req.Data.Username, "by", httpx.UserIDFromContext(ctx))
	httpx.WriteJSON(w, http.StatusOK, statusResponse{HTTP: http.StatusOK, Status: "success"})
}
