package handlers

import (
	"Donation-Hub/internal/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// defaultID falls back to the caller's own account id when the request left
// the id out and the caller is of the expected kind.
func defaultID(c *fiber.Ctx, id string, kind string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	identity, ok := middleware.CurrentIdentity(c)
	if !ok || identity.UserType != kind {
		return id
	}
	return identity.AccountID
}
