package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"
	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"
)

// adminCookieName is the session cookie set after a successful admin login.
const adminCookieName = "admin_authenticated"

// adminSessionTTL is how long an admin session cookie stays valid.
const adminSessionTTL = 24 * time.Hour

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// AdminAuth rejects requests that lack a valid admin session cookie.
func AdminAuth(sessionToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(adminCookieName)
			if err != nil || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(sessionToken)) != 1 {
				appErr := apperrors.Unauthorized("admin authentication required")
				httputil.WriteJSON(w, appErr.Status, httputil.Response{
					Error: &httputil.ErrorResponse{Code: appErr.Code, Message: appErr.Message},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
