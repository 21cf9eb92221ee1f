package handlers

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/api/presenters"
	"Donation-Hub/internal/middleware"
	"Donation-Hub/pkg/account"
	"Donation-Hub/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	AccountHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	accountHandler struct {
		accountService account.AccountService
		sessions       middleware.SessionManager
		jwtService     jwt.JWTService
	}
)

func NewAccountHandler(accountService account.AccountService, sessions middleware.SessionManager, jwtService jwt.JWTService) AccountHandler {
	return &accountHandler{
		accountService: accountService,
		sessions:       sessions,
		jwtService:     jwtService,
	}
}

func (h *accountHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.accountService.Register(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *accountHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.accountService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedLogin, err)
	}

	identity := domain.Identity{AccountID: res.AccountID, UserType: res.UserType}
	if err := h.sessions.Bind(c, identity); err != nil {
		log.Errorf("failed to bind session for %s: %v", res.AccountID, err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

// Logout succeeds whether or not a session exists. A bearer token sent
// along is revoked too.
func (h *accountHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Clear(c); err != nil {
		log.Warnf("failed to clear session: %v", err)
	}
	if token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "); ok {
		if err := h.jwtService.RevokeToken(strings.TrimSpace(token)); err != nil {
			log.Debugf("logout with unusable token: %v", err)
		}
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *accountHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthenticated, domain.ErrTokenNotFound)
	}
	return presenters.SuccessResponse(c, identity, fiber.StatusOK, domain.MessageSuccessMe)
}
