package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/bingo-challenge-go/internal/api/apierr"
)

// StudioCodeHeader carries the shared secret handed out at the studio
const StudioCodeHeader = "x-studio-code"

// StudioConfig holds the shared secret gating admin endpoints. Exactly
// one of Hash or Code should be set; Hash wins when both are.
type StudioConfig struct {
	// Hash is a bcrypt hash of the studio code
	Hash string
	// Code is the plaintext studio code (local development)
	Code string
}

// Configured reports whether a studio code check is possible at all
func (c StudioConfig) Configured() bool {
	return c.Hash != "" || c.Code != ""
}

// Verify checks a presented code against the configured secret
func (c StudioConfig) Verify(code string) bool {
	if code == "" {
		return false
	}
	if c.Hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.Code), []byte(code)) == 1
}

// RequireStudioCode creates middleware gating admin endpoints on the
// x-studio-code header
func RequireStudioCode(cfg StudioConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Configured() {
				apierr.WriteError(w, apierr.NewStudioCodeNotConfiguredError())
				return
			}
			if !cfg.Verify(r.Header.Get(StudioCodeHeader)) {
				apierr.WriteError(w, apierr.NewBadStudioCodeError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
