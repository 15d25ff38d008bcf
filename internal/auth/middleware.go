package auth

import (
	"net/http"
	"strings"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// RequireLogin redirects anonymous requests to the login page. Requests that
// expect JSON get a 401 instead.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess.User() == "" || !shared.HasToken(sess) {
			if strings.Contains(r.Header.Get("Accept"), "application/json") {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
