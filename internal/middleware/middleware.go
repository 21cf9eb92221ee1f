package middleware

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/api/presenters"
	"Donation-Hub/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalIdentity = "identity"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		sessions SessionManager
	}
)

func NewMiddleware(sessions SessionManager) Middleware {
	return &middleware{sessions: sessions}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware accepts a bearer token or the session cookie, in that
// order. A bearer header that does not verify is rejected outright.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
			}
			userID, role, err := jwtService.GetUserIDByToken(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
			if err != nil {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
			}
			setIdentity(c, domain.Identity{AccountID: userID, UserType: role})
			return c.Next()
		}

		identity, ok := m.sessions.Identity(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthenticated, domain.ErrTokenNotFound)
		}
		setIdentity(c, identity)
		return c.Next()
	}
}

func setIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(LocalUserID, identity.AccountID)
	c.Locals(LocalRole, identity.UserType)
	c.Locals(LocalIdentity, identity)
}

// CurrentIdentity returns the identity set by AuthMiddleware.
func CurrentIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(LocalIdentity).(domain.Identity)
	return identity, ok
}
