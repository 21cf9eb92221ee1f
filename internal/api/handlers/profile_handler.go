package handlers

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/api/presenters"
	"Donation-Hub/pkg/profile"

	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		CreateDonorProfile(c *fiber.Ctx) error
		CreateOrganizationProfile(c *fiber.Ctx) error
		GetDonorProfile(c *fiber.Ctx) error
		GetOrganizationProfile(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
	}
)

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandler{profileService: profileService}
}

func (h *profileHandler) CreateDonorProfile(c *fiber.Ctx) error {
	req := new(domain.DonorProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.DonorID = defaultID(c, req.DonorID, domain.RoleDonor)

	res, err := h.profileService.CreateDonorProfile(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateDonorProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonorProfile)
}

func (h *profileHandler) CreateOrganizationProfile(c *fiber.Ctx) error {
	req := new(domain.OrganizationProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.OrganizationID = defaultID(c, req.OrganizationID, domain.RoleOrganization)

	res, err := h.profileService.CreateOrganizationProfile(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateOrganizationProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrganizationProfile)
}

func (h *profileHandler) GetDonorProfile(c *fiber.Ctx) error {
	res, err := h.profileService.GetDonorProfile(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) GetOrganizationProfile(c *fiber.Ctx) error {
	res, err := h.profileService.GetOrganizationProfile(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}
