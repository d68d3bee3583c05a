package server

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

const (
	csrfCookie = "scholarform_csrf"
	// CSRFKeyLength is the size of the key authenticating the token cookie.
	CSRFKeyLength = 32
)

// protection wraps the HTML form routes with gorilla/csrf. Without a
// configured key a random one is generated, so tokens do not survive a
// restart.
func (s *Server) protection() (func(http.Handler) http.Handler, error) {
	key := s.csrfKey
	switch {
	case len(key) == 0:
		key = make([]byte, CSRFKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("server: generate csrf key: %w", err)
		}
		s.logger.Warn("no csrf key configured, using an ephemeral key")
	case len(key) < CSRFKeyLength:
		return nil, fmt.Errorf("server: csrf key must be at least %d bytes, got %d", CSRFKeyLength, len(key))
	}

	return csrf.Protect(key,
		csrf.FieldName(s.csrfField),
		csrf.CookieName(csrfCookie),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.Secure(s.secureCookies),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.ErrorHandler(http.HandlerFunc(s.csrfFailed)),
	), nil
}

func (s *Server) csrfFailed(w http.ResponseWriter, r *http.Request) {
	reason := csrf.FailureReason(r)
	s.logger.Warn("csrf check failed",
		zap.String("path", r.URL.Path),
		zap.String("client", clientKey(r)),
		zap.Error(reason),
	)
	http.Error(w, "invalid csrf token", http.StatusForbidden)
}
