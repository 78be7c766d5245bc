package middleware

import (
	"context"
	"net/http"
	"strings"

	httputil "tigminoo/pkg/http"
	"tigminoo/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type claimsKey struct{}

// Authenticated wraps a route with bearer-token verification. A missing or
// invalid claim is rejected with 401 before the handler runs; role and
// ownership checks stay in the handlers, which answer 403.
func Authenticated(tokens *token.Manager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := extractClaims(r, tokens)
		if err != nil {
			_ = httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
				Error: "Missing or invalid token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

func extractClaims(r *http.Request, tokens *token.Manager) (*token.Claims, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, token.ErrInvalidToken
	}
	return tokens.Verify(raw)
}

// ClaimsFrom returns the verified identity claim injected by Authenticated.
func ClaimsFrom(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*token.Claims)
	return claims, ok
}

// ContextWithClaims is a test hook for handlers that read claims.
func ContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
