package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/novastreet/storefront/pkg/auth"
	"github.com/novastreet/storefront/pkg/response"
	"github.com/novastreet/storefront/pkg/session"
)

type userKey struct{}

// Auth guards routes that require a signed-in shopper. Two credentials are
// accepted: a Bearer JWT (API callers) or a signed-in session cookie (the
// storefront UI). Unauthenticated requests get a 401 and never reach the
// handler — the server-side equivalent of the UI blocking add-to-cart for
// visitors without a session.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
			return
		}

		if id, ok := session.FromCtx(r).GetString("user_id"); ok && id != "" {
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
			return
		}

		response.Unauthorized(w)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// WithUserID stores the authenticated user's ID in ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserID returns the authenticated user's ID, or "" when the request is
// anonymous.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userKey{}).(string); ok {
		return id
	}
	return ""
}
