package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stormkid2009/restooo/internal/domain"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

const claimsKey = "auth_claims"

// Rejection messages are part of the HTTP contract.
const (
	MsgNoToken        = "No token provided"
	MsgBadTokenFormat = "Token format invalid. Expected: Bearer <token>"
	MsgTokenExpired   = "Token expired"
	MsgTokenInvalid   = "Invalid token"
	MsgAuthFailed     = "Authentication failed"
)

// Middleware validates bearer tokens and attaches claims to the request.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth enforces authentication for protected routes. Any rejection
// short-circuits the chain; the protected handler never runs.
func (m *Middleware) RequireAuth(c *fiber.Ctx) error {
	claims, err := m.authenticate(c)
	if err != nil {
		return err
	}
	c.Locals(claimsKey, claims)
	return c.Next()
}

// OptionalAuth runs the same extraction and verification but never blocks:
// on any failure the request proceeds without an identity.
func (m *Middleware) OptionalAuth(c *fiber.Ctx) error {
	if claims, err := m.authenticate(c); err == nil {
		c.Locals(claimsKey, claims)
	}
	return c.Next()
}

func (m *Middleware) authenticate(c *fiber.Ctx) (*Claims, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, apperrors.NewUnauthorized(MsgNoToken)
	}

	// Exactly two space-separated parts with a literal Bearer prefix.
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.NewUnauthorized(MsgBadTokenFormat)
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			return nil, apperrors.NewUnauthorized(MsgTokenExpired)
		case errors.Is(err, ErrTokenMalformed):
			return nil, apperrors.NewUnauthorized(MsgTokenInvalid)
		default:
			return nil, apperrors.NewUnauthorized(MsgAuthFailed)
		}
	}
	return claims, nil
}

// RequireRole admits only callers whose role is in the allow-list. An empty
// allow-list admits every authenticated caller. It must run after
// RequireAuth; a missing identity signals a misordered chain and is
// surfaced as an authorization failure.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
		names = append(names, string(role))
	}
	forbiddenMsg := "Forbidden - Requires one of the following roles: " + strings.Join(names, ", ")

	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewForbidden(forbiddenMsg)
		}
		if len(allowedSet) > 0 {
			if _, exists := allowedSet[claims.Role]; !exists {
				return apperrors.NewForbidden(forbiddenMsg)
			}
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the authenticated identity, if any.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
