package middleware

import (
	"net/http"

	"confetex-be/internal/auth"
	"confetex-be/internal/utils"
)

// AuthMiddleware parses the access token when present and enriches the
// request context with the user identity. Requests without a valid token
// pass through anonymous; gates are applied per-route.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
