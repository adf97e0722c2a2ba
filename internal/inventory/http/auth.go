package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
)

const (
	msgEmailTaken = "That email is already used"
	msgBadLogin   = "Incorrect username or password"
)

type AuthHandler struct {
	UserService    *service.UserService
	SessionService *service.SessionService
	CookieSecure   bool
}

// Register creates a new account.
//
//	@Summary		Register a user
//	@Description	Creates an account. Validation failures map each field to a message.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventorysdk.RegisterUserRequest	true	"New account"
//	@Success		200		{object}	inventorysdk.UserResponse			"Registered email"
//	@Failure		400		{object}	map[string]string					"Field to message map"
//	@Failure		500		{object}	inventorysdk.ErrorResponse			"Server error"
//	@Router			/auth/register [post].
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inventorysdk.RegisterUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"body": "Request body must be valid JSON."})
		return
	}

	u, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		var verrs service.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			httpx.WriteJSON(w, http.StatusBadRequest, verrs.Map())
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"email": msgEmailTaken})
		default:
			writeServerError(w, r, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inventorysdk.UserResponse{Email: u.Email})
}

// Login exchanges credentials for a session cookie.
//
//	@Summary		Log in
//	@Description	Checks credentials and sets the session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventorysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	inventorysdk.UserResponse	"Logged in email"
//	@Failure		400		{object}	inventorysdk.ErrorResponse	"Incorrect username or password"
//	@Failure		500		{object}	inventorysdk.ErrorResponse	"Server error"
//	@Router			/auth/login [post].
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inventorysdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadLogin)
		return
	}

	issued, err := h.SessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusBadRequest, msgBadLogin)
			return
		}
		writeServerError(w, r, err)
		return
	}

	httpx.SetSessionCookie(w, issued.Token, issued.ExpiresAt, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, inventorysdk.UserResponse{Email: issued.User.Email})
}

// Logout ends the current session.
//
//	@Summary		Log out
//	@Description	Revokes the presented session, if any, and clears the cookie.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	inventorysdk.MessageResponse	"Logged out."
//	@Failure		500	{object}	inventorysdk.ErrorResponse		"Server error"
//	@Router			/auth/logout [post].
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionService.Logout(r.Context(), httpx.SessionToken(r)); err != nil {
		writeServerError(w, r, err)
		return
	}

	httpx.ClearSessionCookie(w, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, inventorysdk.MessageResponse{Message: "Logged out."})
}
