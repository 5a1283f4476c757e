package middleware

import (
	"net/http"

	"clinic-services/internal/permission"
	"clinic-services/pkg/response"
)

// Rule decides whether the authenticated caller may perform the request.
type Rule func(p *permission.Principal, r *http.Request) bool

// Require creates a middleware that lets the request through only when rule
// holds for the caller. It must run after AuthMiddleware.Authenticate.
func Require(rule Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !rule(principal, r) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return Require(func(p *permission.Principal, _ *http.Request) bool {
		return permission.IsAdmin(p)
	})(next)
}

// RequireDocumentWriter lets the roles that create and edit medical documents through
func RequireDocumentWriter(next http.Handler) http.Handler {
	return Require(func(p *permission.Principal, _ *http.Request) bool {
		return permission.CanWriteDocument(p)
	})(next)
}

// AdminOrReadOnly allows any authenticated read and admin writes
func AdminOrReadOnly(next http.Handler) http.Handler {
	return Require(func(p *permission.Principal, r *http.Request) bool {
		return permission.IsAdminOrReadOnly(p, r.Method)
	})(next)
}

func AdminOrManagerOrReadOnly(next http.Handler) http.Handler {
	return Require(func(p *permission.Principal, r *http.Request) bool {
		return permission.IsAdminOrManagerOrReadOnly(p, r.Method)
	})(next)
}
