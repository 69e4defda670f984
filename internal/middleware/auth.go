package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/maykapos/hotelpos/internal/auth"
)

// RequireAdmin wraps a handler so it only runs with a valid admin session
// token in the Authorization header. Mutating catalog operations and bill
// deletion sit behind this gate; sales flow endpoints do not.
func RequireAdmin(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, auth.ErrInvalidToken.Error())
			return
		}

		if _, err := jwtManager.Validate(parts[1]); err != nil {
			unauthorized(w, auth.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
