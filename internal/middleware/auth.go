package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Auth guards the API group. A request is accepted when it carries either an
// X-API-Token header matching apiToken, or an Authorization: Bearer token
// whose signature verifies against jwtSecret. Tokens are issued by an
// external identity provider; we only verify the signature and expiry here.
// If both apiToken and jwtSecret are empty the guard is disabled.
func Auth(apiToken, jwtSecret string) func(http.Handler) http.Handler {
	if apiToken == "" && jwtSecret == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiToken != "" && r.Header.Get("X-API-Token") == apiToken {
				next.ServeHTTP(w, r)
				return
			}
			if jwtSecret != "" {
				if raw, ok := bearerToken(r); ok && verifyJWT(raw, jwtSecret) {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	return strings.TrimPrefix(auth, prefix), true
}

func verifyJWT(raw, secret string) bool {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	return err == nil && token.Valid
}
