package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/service"
	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/aussiebroadwan/digits/pkg/httpx"
	"github.com/aussiebroadwan/digits/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Cookie      httpx.SessionCookie
}

// safeNext keeps post-login redirects on this site. Anything that is not a
// plain absolute path falls back to "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates an account. Usernames are up to 150 letters, digits and @.+-_ characters.
//	@Description	Passwords need 8 characters, may not be all digits or match the username, and must be entered twice.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string	true	"Username"
//	@Param			password1	formData	string	true	"Password"
//	@Param			password2	formData	string	true	"Password confirmation"
//	@Success		201			{object}	digitsdk.UserResponse
//	@Failure		400			{object}	digitsdk.APIError	"validation_error"
//	@Router			/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		digitsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	u, err := h.AuthService.Register(r.Context(), domain.RegisterInput{
		Username:  r.PostFormValue("username"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, digitsdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	})
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Checks the credentials and sets the session cookie. Browsers are redirected to next.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string	true	"Username"
//	@Param			password	formData	string	true	"Password"
//	@Param			next		query		string	false	"Path to continue to after login"
//	@Success		200			{object}	digitsdk.LoginResponse
//	@Success		303
//	@Failure		401			{object}	digitsdk.APIError	"invalid_credentials"
//	@Router			/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		digitsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	username := r.PostFormValue("username")
	token, _, err := h.AuthService.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Drop whatever session the client had before.
	if old := h.Cookie.Token(r); old != "" && old != token {
		if err := h.AuthService.Logout(r.Context(), old); err != nil {
			slogx.FromContext(r.Context()).Warn("failed to drop previous session", slog.Any("error", err))
		}
	}
	h.Cookie.Set(w, token)

	next := safeNext(r.FormValue("next"))
	if httpx.WantsHTML(r) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, digitsdk.LoginResponse{
		Status:   digitsdk.StatusOK,
		Username: username,
		Next:     next,
	})
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Ends the current session, if any, and clears the cookie.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	digitsdk.StatusResponse
//	@Router			/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), h.Cookie.Token(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Cookie.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, digitsdk.StatusResponse{Status: digitsdk.StatusLoggedOut})
}

// HandleChangePassword godoc
//
//	@Summary		Change Password
//	@Description	Replaces the password. The current session stays logged in, all other sessions are ended.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			old_password	formData	string	true	"Current password"
//	@Param			new_password1	formData	string	true	"New password"
//	@Param			new_password2	formData	string	true	"New password confirmation"
//	@Success		200				{object}	digitsdk.StatusResponse
//	@Failure		400				{object}	digitsdk.APIError	"validation_error"
//	@Failure		401				{object}	digitsdk.APIError
//	@Router			/password [post]
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		digitsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	err := h.AuthService.ChangePassword(r.Context(), actorFrom(r), domain.ChangePasswordInput{
		OldPassword:  r.PostFormValue("old_password"),
		NewPassword1: r.PostFormValue("new_password1"),
		NewPassword2: r.PostFormValue("new_password2"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, digitsdk.StatusResponse{Status: digitsdk.StatusPasswordChanged})
}

// HandleProfile godoc
//
//	@Summary		Profile
//	@Description	Returns the logged in account.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	digitsdk.UserResponse
//	@Failure		401	{object}	digitsdk.APIError
//	@Router			/profile [get]
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.AuthService.Profile(r.Context(), actorFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, digitsdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	})
}
