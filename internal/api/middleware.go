package api

import (
	"net/http"
	"strings"

	"github.com/staffpicks/staffpicks-server/internal/http/response"
)

// publicPaths are reachable without a session cookie. Everything else
// under /api requires a valid session.
var publicPaths = map[string]bool{
	"/api/auth/login":  true,
	"/api/auth/signup": true,
	"/api/auth/logout": true,
}

// publicPrefixes are parameterized public routes. The ISBN lookup is
// open so the dashboard's add-book form works before login state
// settles; the metadata client's rate limiter bounds upstream calls.
var publicPrefixes = []string{
	"/api/isbn/",
}

func isPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// sessionMiddleware authenticates API requests from the session cookie.
//
// The user is re-fetched on every request: tokens of deleted or
// non-active users stop working immediately, not at cookie expiry.
// Auth failures clear the cookie so clients drop back to the login
// screen instead of retrying a dead session.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(s.cookieName)
		if err != nil || cookie.Value == "" {
			response.Unauthorized(w, "authentication required", s.logger)
			return
		}

		_, access, err := s.services.Auth.VerifySession(r.Context(), cookie.Value)
		if err != nil {
			s.clearSessionCookie(w)
			response.Unauthorized(w, "invalid or expired session", s.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), access)))
	})
}

// signupRateLimit throttles tenant signups per client IP. Everything
// else passes through untouched.
func (s *Server) signupRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/auth/signup" {
			ip := clientIP(r)
			if !s.signupLimiter.Allow(ip) {
				s.logger.Warn("signup rate limit exceeded", "ip", ip)
				response.TooManyRequests(w, "too many signup attempts, try again later", s.logger)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// sessionCookie builds the session cookie set on login and signup.
// Huma serializes it through the Set-Cookie output header.
func (s *Server) sessionCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// expiredSessionCookie builds a cookie that evicts the session.
func (s *Server) expiredSessionCookie() http.Cookie {
	return http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// clearSessionCookie expires the session cookie on raw responses.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	c := s.expiredSessionCookie()
	http.SetCookie(w, &c)
}

// clientIP extracts the client IP. chi's RealIP middleware has already
// folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
