package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinic-services/internal/client"
	"clinic-services/internal/permission"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// Authenticator resolves a bearer token to the calling account.
type Authenticator interface {
	Validate(ctx context.Context, accessToken string) (*permission.Principal, error)
}

// AuthenticatorFunc adapts a plain function, such as AccountClient.Me, to Authenticator.
type AuthenticatorFunc func(ctx context.Context, accessToken string) (*permission.Principal, error)

func (f AuthenticatorFunc) Validate(ctx context.Context, accessToken string) (*permission.Principal, error) {
	return f(ctx, accessToken)
}

type AuthMiddleware struct {
	authenticator Authenticator
	log           *logrus.Logger
}

func NewAuthMiddleware(authenticator Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		log:           log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		tokenString := parts[1]

		principal, err := m.authenticator.Validate(r.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrTokenInvalidated):
				response.Error(w, http.StatusUnauthorized, response.CodeTokenInvalidated, "Token has been invalidated")
			case errors.Is(err, usecase.ErrInvalidToken),
				errors.Is(err, usecase.ErrUserDeleted),
				errors.Is(err, client.ErrUnauthenticated):
				response.Unauthorized(w, "Invalid or expired token")
			case errors.Is(err, client.ErrDependencyUnavailable):
				m.log.WithField("dependency", "account").Warnf("Failed to authenticate request: %v", err)
				response.ServiceUnavailable(w, "Account service is unavailable")
			default:
				m.log.Warnf("Failed to authenticate request: %+v", err)
				response.InternalServerError(w, "Failed to validate token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipalFromContext extracts the authenticated caller from context
func GetPrincipalFromContext(ctx context.Context) (*permission.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*permission.Principal)
	return principal, ok && principal != nil
}
