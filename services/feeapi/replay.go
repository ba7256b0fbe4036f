package feeapi

import (
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/genlayerlabs/fee-simulator/gateway/middleware"
	"github.com/genlayerlabs/fee-simulator/storage"
)

// replayGuard rejects a request whose bearer token's jti claim has
// already been consumed, bounding how long a captured token can be
// reused against the write path. It runs after middleware.Authenticator
// so the token is already signature- and claim-verified; it only needs
// to parse out jti here.
func replayGuard(nonces *storage.NonceCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if nonces == nil {
				next.ServeHTTP(w, r)
				return
			}
			tokenString, _ := r.Context().Value(middleware.ContextKeyToken).(string)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}
			parser := jwt.NewParser()
			claims := jwt.MapClaims{}
			if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
				next.ServeHTTP(w, r)
				return
			}
			jti, _ := claims["jti"].(string)
			if jti == "" {
				next.ServeHTTP(w, r)
				return
			}
			seen, err := nonces.SeenBefore(jti, time.Now())
			if err == nil && seen {
				http.Error(w, "token already used", http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
