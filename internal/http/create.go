package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/pkg/httpx"
	"github.com/teamhq/userauth/pkg/slogx"
)

type CreateHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Create a user account
//	@Description	Creates a user with a server-generated password. The plaintext is returned exactly once for the administrator to hand over. Admin-only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dataRequest		true	"New user fields"
//	@Success		200		{object}	statusResponse	"http, status, password"
//	@Failure		400		{object}	ErrorResponse	"missing fields"
//	@Failure		403		"caller is not an admin"
//	@Failure		409		{object}	ErrorResponse	"email already taken"
//	@Router			/api/user/create [post].
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	password, err := h.UserService.Create(ctx, service.CreateUserInput{
		FirstName: req.Data.FirstName,
		LastName:  req.Data.LastName,
		Role:      req.Data.JobRole,
		Email:     req.Data.Username,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("user created", "email", req.Data.Username, "by", httpx.UserIDFromContext(ctx))
	httpx.WriteJSON(w, http.StatusOK, statusResponse{
		HTTP:     http.StatusOK,
		Status:   "success",
		Password: password,
	})
}
