// ABOUTME: Authentication middleware for the trends services
// ABOUTME: Extracts bearer tokens, resolves the current user, and enforces admin access

package auth

import (
	"context"
	"net/http"
	"strings"

	"trends-shared/api/httputil"
	"trends-shared/core/domain"
	coreerrors "trends-shared/core/errors"
	"trends-shared/core/messages"
)

// userContextKey is the context key under which the authenticated user is stored.
type userContextKey struct{}

// RequireUser returns middleware that authenticates every request against
// the user service and stores the user in the request context.
func RequireUser(client *Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, credentials, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, &coreerrors.UnauthorizedError{Message: messages.InvalidToken})
				return
			}

			user, err := client.CurrentUser(r.Context(), scheme, credentials)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that rejects non-admin users. It must run
// after RequireUser.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				httputil.WriteError(w, &coreerrors.UnauthorizedError{Message: messages.InvalidToken})
				return
			}

			if !user.IsAdmin {
				httputil.WriteError(w, &coreerrors.ForbiddenError{Message: messages.UserForbidden})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated user stored by RequireUser.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*domain.User)
	return user, ok
}

// bearerToken splits the Authorization header into scheme and credentials.
func bearerToken(r *http.Request) (scheme, credentials string, ok bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}
