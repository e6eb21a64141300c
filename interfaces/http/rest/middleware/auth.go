package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"contactkeeper/pkg/auth"
	"contactkeeper/pkg/common"
)

// Authenticate guards a route subtree with bearer-token authentication.
// It extracts the credential from the Authorization header, validates it,
// and attaches the resolved identity to the request context. Any failure
// responds 401 immediately; the wrapped handler never runs.
func Authenticate(tokens *auth.TokenService, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				common.RespondMsg(w, http.StatusUnauthorized, "No token, authorisation denied")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				logger.Warn("rejected token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				common.RespondMsg(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			userCtx := &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			}
			ctx := auth.SetUserInContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer pulls the token out of "Authorization: Bearer <token>".
// A bare token without the Bearer prefix is accepted too.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}
