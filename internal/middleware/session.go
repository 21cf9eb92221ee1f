package middleware

import (
	"Donation-Hub/domain"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionCookieName = "donation_hub_session"
	sessionAccountKey = "account_id"
	sessionUserType   = "user_type"
)

type (
	// SessionManager binds an identity to the caller's session cookie.
	SessionManager interface {
		Bind(c *fiber.Ctx, identity domain.Identity) error
		Clear(c *fiber.Ctx) error
		Identity(c *fiber.Ctx) (domain.Identity, bool)
	}

	sessionManager struct {
		store *session.Store
	}
)

func NewSessionManager() SessionManager {
	return &sessionManager{
		store: session.New(session.Config{
			Expiration:     24 * time.Hour,
			KeyLookup:      "cookie:" + sessionCookieName,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// EncryptCookieKey derives the cookie encryption key from SESSION_SECRET.
// An empty secret gets a random key, so sessions end with the process.
func EncryptCookieKey(secret string) string {
	if secret == "" {
		return encryptcookie.GenerateKey()
	}
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (m *sessionManager) Bind(c *fiber.Ctx, identity domain.Identity) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	// new id on login so a pre-login cookie cannot be reused
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionAccountKey, identity.AccountID)
	sess.Set(sessionUserType, identity.UserType)
	return sess.Save()
}

func (m *sessionManager) Clear(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

func (m *sessionManager) Identity(c *fiber.Ctx) (domain.Identity, bool) {
	sess, err := m.store.Get(c)
	if err != nil || sess.Fresh() {
		return domain.Identity{}, false
	}

	accountID, _ := sess.Get(sessionAccountKey).(string)
	userType, _ := sess.Get(sessionUserType).(string)
	if accountID == "" {
		return domain.Identity{}, false
	}
	return domain.Identity{AccountID: accountID, UserType: userType}, true
}
