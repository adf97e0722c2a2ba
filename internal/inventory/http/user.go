package http

import (
	"net/http"

	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
)

type ProfileHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the signed-in user's profile.
//
//	@Summary		Current user
//	@Description	Returns the profile of the session's user. Used by clients to probe for a live session.
//	@Tags			User
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	inventorysdk.ProfileResponse	"Profile"
//	@Failure		401	{object}	inventorysdk.ErrorResponse		"No live session"
//	@Failure		500	{object}	inventorysdk.ErrorResponse		"Server error"
//	@Router			/user/protected [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.UserService.GetUserByID(ctx, p.UserID)
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inventorysdk.ProfileResponse{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}
