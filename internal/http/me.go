package http

import (
	"net/http"

	"github.com/teamhq/userauth/pkg/httpx"
)

type MeHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Get the authenticated user's profile
//	@Description	Returns the user record decoded from the verified bearer token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	meResponse	"user"
//	@Failure		401	"missing or invalid token"
//	@Router			/api/user/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		// Authn middleware always runs first; reaching here without
		// claims is a routing bug.
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meResponse{User: userPayload{
		ID:        claims.Subject,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		JobRole:   claims.Role,
		Username:  claims.Email,
	}})
}
