package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskboard/taskboard-server/internal/auth"
	"github.com/taskboard/taskboard-server/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth verifies the bearer token and attaches the caller's identity to the
// request context. Missing or invalid tokens are rejected before any handler
// logic runs, always with the same blanket 401.
func Auth(verifier *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				unauthorized(w)
				return
			}

			ident, err := verifier.Verify(tokenStr)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the verified caller, or nil on an unauthenticated
// request (only possible on routes outside the Auth middleware).
func IdentityFrom(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(identityKey).(*auth.Identity)
	return ident
}

func unauthorized(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}
