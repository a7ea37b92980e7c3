package http

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"
	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"
	"github.com/23sarmiento78/BOLUSHOP/pkg/validator"
)

// AuthHandler handles admin login and logout. The session token is
// generated per process, so restarting the server invalidates every
// existing admin cookie.
type AuthHandler struct {
	adminUser     string
	adminPassword string
	sessionToken  string
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates the admin auth handler.
func NewAuthHandler(adminUser, adminPassword string, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		adminUser:     adminUser,
		adminPassword: adminPassword,
		sessionToken:  uuid.NewString(),
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// SessionToken returns the token AdminAuth should accept.
func (h *AuthHandler) SessionToken() string {
	return h.sessionToken
}

// LoginRequest is the JSON request body for admin login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) == 1
	if !userOK || !passOK {
		h.logger.WarnContext(r.Context(), "failed admin login attempt",
			slog.String("username", req.Username),
		)
		httputil.WriteError(w, r, apperrors.Unauthorized("invalid credentials"), h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    h.sessionToken,
		Path:     "/",
		MaxAge:   int(adminSessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.InfoContext(r.Context(), "admin logged in")
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"authenticated": true}})
}

// Logout handles POST /api/v1/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"authenticated": false}})
}
