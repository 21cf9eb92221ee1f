package handlers

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/api/presenters"
	"Donation-Hub/internal/utils/metrics"
	"Donation-Hub/internal/utils/storage"
	"Donation-Hub/pkg/donation"
	"Donation-Hub/pkg/gemini"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const maxDescribeImageSize = 10 << 20

type (
	DonationHandler interface {
		SubmitDonation(c *fiber.Ctx) error
		DescribeImage(c *fiber.Ctx) error
		ListDonorDonations(c *fiber.Ctx) error

		ListPending(c *fiber.Ctx) error
		AcceptRequest(c *fiber.Ctx) error
		DeclineRequest(c *fiber.Ctx) error
		SchedulePickup(c *fiber.Ctx) error
		ListAccepted(c *fiber.Ctx) error
		ListDeclined(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		describer       gemini.ImageDescriber
		metrics         *metrics.Metrics
	}
)

func NewDonationHandler(donationService donation.DonationService, describer gemini.ImageDescriber, m *metrics.Metrics) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		describer:       describer,
		metrics:         m,
	}
}

func (h *donationHandler) SubmitDonation(c *fiber.Ctx) error {
	req := new(domain.DonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.DonorID = defaultID(c, req.DonorID, domain.RoleDonor)

	res, err := h.donationService.SubmitDonation(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

// DescribeImage takes a multipart "image" file or a JSON body carrying a
// base64 payload.
func (h *donationHandler) DescribeImage(c *fiber.Ctx) error {
	image, mimeType, err := readImage(c)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDescribeImage, err)
	}

	description, err := h.describer.Describe(c.Context(), image, mimeType)
	h.metrics.DescribeCalled(err)
	if err != nil {
		log.Errorf("image description failed: %v", err)
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDescribeImage, err)
	}

	return presenters.SuccessResponse(c, domain.DescribeImageResponse{Description: description}, fiber.StatusOK, domain.MessageSuccessDescribeImage)
}

func readImage(c *fiber.Ctx) ([]byte, string, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			return nil, "", domain.ErrImageRequired
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxDescribeImageSize))
		if err != nil {
			return nil, "", err
		}
		if len(data) == 0 {
			return nil, "", domain.ErrImageRequired
		}

		mimeType := fileHeader.Header.Get(fiber.HeaderContentType)
		if mimeType == "" || mimeType == fiber.MIMEOctetStream {
			mimeType = mimetype.Detect(data).String()
		}
		return data, mimeType, nil
	}

	req := new(domain.DescribeImageRequest)
	if err := c.BodyParser(req); err != nil {
		return nil, "", domain.ErrImageRequired
	}
	if strings.TrimSpace(req.Image) == "" {
		return nil, "", domain.ErrImageRequired
	}

	data, detected, err := storage.DecodeBase64Image(req.Image)
	if err != nil {
		return nil, "", domain.ErrInvalidImage
	}
	if req.MimeType != "" {
		detected = req.MimeType
	}
	return data, detected, nil
}

func (h *donationHandler) ListDonorDonations(c *fiber.Ctx) error {
	res, err := h.donationService.ListDonorDonations(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDonations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) ListPending(c *fiber.Ctx) error {
	organizationID := defaultID(c, c.Query("organization_id"), domain.RoleOrganization)

	res, err := h.donationService.ListPending(c.Context(), organizationID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetPending, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPending)
}

func (h *donationHandler) AcceptRequest(c *fiber.Ctx) error {
	req, err := parseTransition(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donationService.AcceptRequest(c.Context(), req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAcceptRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAcceptRequest)
}

func (h *donationHandler) DeclineRequest(c *fiber.Ctx) error {
	req, err := parseTransition(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donationService.DeclineRequest(c.Context(), req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeclineRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeclineRequest)
}

func parseTransition(c *fiber.Ctx) (domain.TransitionRequest, error) {
	req := new(domain.TransitionRequest)
	if err := c.BodyParser(req); err != nil {
		return domain.TransitionRequest{}, err
	}
	req.OrganizationID = defaultID(c, req.OrganizationID, domain.RoleOrganization)
	return *req, nil
}

func (h *donationHandler) SchedulePickup(c *fiber.Ctx) error {
	req := new(domain.PickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.OrganizationID = defaultID(c, req.OrganizationID, domain.RoleOrganization)

	res, err := h.donationService.SchedulePickup(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedSchedulePickup, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSchedulePickup)
}

func (h *donationHandler) ListAccepted(c *fiber.Ctx) error {
	res, err := h.donationService.ListAccepted(c.Context(), c.Query("organization_id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetAccepted, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAccepted)
}

func (h *donationHandler) ListDeclined(c *fiber.Ctx) error {
	res, err := h.donationService.ListDeclined(c.Context(), c.Query("organization_id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDeclined, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDeclined)
}
