package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"pushauth/internal/auth"
	"pushauth/internal/constants"
)

// TokenValidator verifies a raw bearer token.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
}

func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth resolves the caller from the bearer token and stores it in the
// request context, or rejects the request with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, constants.MsgTokenMissing)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			unauthorized(w, constants.MsgTokenMissing)
			return
		}

		claims, err := m.tokens.Validate(r.Context(), strings.TrimSpace(parts[1]))
		if errors.Is(err, auth.ErrDenylistUnavailable) {
			slog.Error("error checking bearer token", "error", err)
			internalError(w)
			return
		}
		if err != nil {
			slog.Debug("rejected bearer token", "error", err)
			unauthorized(w, constants.MsgTokenInvalid)
			return
		}

		ctx := auth.WithIdentity(r.Context(), auth.IdentityFromClaims(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
