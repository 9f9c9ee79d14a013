package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/actuallystonmai/catalog-service/internal/handler"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// RequireJWT admits requests carrying "Authorization: Bearer <token>"
// signed with secret using HS256.
func RequireJWT(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)
	keyFunc := func(*jwt.Token) (any, error) { return key, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handler.WriteError(w, http.StatusUnauthorized, "unauthorized",
					"Access is limited to authorized users")
				return
			}

			_, err := jwt.Parse(raw, keyFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, jwt.ErrTokenExpired):
				handler.WriteError(w, http.StatusUnauthorized, "token_expired", "Session has expired")
			default:
				logger.Warn("rejected token", zap.Error(err))
				handler.WriteError(w, http.StatusUnauthorized, "invalid_token", "Invalid access token")
			}
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}
