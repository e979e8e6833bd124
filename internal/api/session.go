package api

import (
	"net/http"
	"time"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
)

// sessionCookieWriter issues and revokes the session cookie. The cookie is
// HttpOnly so scripts can never read the token, and SameSite=Strict so it is
// never attached to cross-site requests. The Secure flag follows the
// environment: local development runs over plain HTTP.
type sessionCookieWriter struct {
	lifetime time.Duration
	secure   bool
}

func (s sessionCookieWriter) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     shared.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.lifetime.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clear expires the cookie immediately. MaxAge=-1 deletes it on conforming
// clients; the empty value covers the rest.
func (s sessionCookieWriter) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     shared.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
