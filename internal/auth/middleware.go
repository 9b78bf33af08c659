package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/domain"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

const principalKey = "auth_principal"

// PrincipalResolver turns decoded token claims into a live principal,
// confirming the account still exists.
type PrincipalResolver interface {
	ValidateToken(ctx context.Context, claims *Claims) (*domain.Principal, error)
}

// AuthMiddleware validates bearer tokens and loads principals. Public routes
// are registered outside the guarded groups and never reach it.
type AuthMiddleware struct {
	tokens   *TokenManager
	resolver PrincipalResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver}
}

// Handle enforces authentication for protected routes. Every failure mode
// collapses into the same Unauthorized outcome so the response does not leak
// which step rejected the request.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := BearerFromHeader(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return unauthorized()
	}

	claims, err := m.tokens.Decode(token)
	if err != nil {
		return unauthorized()
	}

	principal, err := m.resolver.ValidateToken(c.Context(), claims)
	if err != nil {
		return unauthorized()
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func unauthorized() error {
	return apperrors.NewUnauthorized("unauthorized", "")
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}

// BearerFromHeader extracts the token from a scheme-prefixed Authorization
// header. Malformed headers are treated as absent.
func BearerFromHeader(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
