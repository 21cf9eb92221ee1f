package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	MessageSuccessCreateDonation = "donation created successfully"
	MessageSuccessGetDonations   = "donations retrieved successfully"
	MessageSuccessGetPending     = "pending pickups retrieved successfully"
	MessageSuccessAcceptRequest  = "request accepted successfully"
	MessageSuccessDeclineRequest = "request declined successfully"
	MessageSuccessSchedulePickup = "pickup scheduled successfully"
	MessageSuccessGetAccepted    = "accepted requests retrieved successfully"
	MessageSuccessGetDeclined    = "declined requests retrieved successfully"
	MessageSuccessDescribeImage  = "image described successfully"

	MessageFailedCreateDonation = "failed to create donation"
	MessageFailedGetDonations   = "failed to retrieve donations"
	MessageFailedGetPending     = "failed to retrieve pending pickups"
	MessageFailedAcceptRequest  = "failed to accept request"
	MessageFailedDeclineRequest = "failed to decline request"
	MessageFailedSchedulePickup = "failed to schedule pickup"
	MessageFailedGetAccepted    = "failed to retrieve accepted requests"
	MessageFailedGetDeclined    = "failed to retrieve declined requests"
	MessageFailedDescribeImage  = "failed to describe image"

	ErrDonationNotFound     = fmt.Errorf("%w: no pending donation for donor", ErrNotFound)
	ErrInvalidDonationField = fmt.Errorf("%w: donor_id, condition and date are required", ErrValidation)
	ErrInvalidTransition    = fmt.Errorf("%w: donor_id and organization_id are required", ErrValidation)
	ErrInvalidPickupField   = fmt.Errorf("%w: donor_id, organization_id, pickup_date and pickup_time are required", ErrValidation)
	ErrImageRequired        = fmt.Errorf("%w: image is required", ErrValidation)
	ErrInvalidImage         = fmt.Errorf("%w: image is not valid base64", ErrValidation)
	ErrGeminiFailed         = fmt.Errorf("%w: gemini returned no description", ErrUpstream)
	ErrItemCountOutOfRange  = fmt.Errorf("%w: item_count is out of range", ErrValidation)
)

// ItemCount accepts a JSON number or numeric string. Anything else,
// including null, decodes to zero, as do negative counts. A count that does
// not fit in an int is rejected.
type ItemCount int

func (n *ItemCount) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil
		}
		value = parsed
	default:
		return nil
	}

	count, err := toItemCount(value)
	if err != nil {
		return err
	}
	*n = count
	return nil
}

func toItemCount(value float64) (ItemCount, error) {
	if math.IsNaN(value) {
		return 0, nil
	}
	// float64(math.MaxInt) rounds up to 2^63, which is already out of range
	if value >= float64(math.MaxInt) || value < float64(math.MinInt) {
		return 0, ErrItemCountOutOfRange
	}
	if value < 0 {
		return 0, nil
	}
	return ItemCount(int(value)), nil
}

type (
	DonationRequest struct {
		DonorID     string    `json:"donor_id" validate:"required"`
		Condition   string    `json:"condition" validate:"required"`
		ItemCount   ItemCount `json:"item_count"`
		Date        string    `json:"date" validate:"required"`
		Notes       string    `json:"notes"`
		Image       string    `json:"image"`
		Description string    `json:"description"`
		ItemName    string    `json:"item_name"`
	}

	Donation struct {
		ID             string    `json:"id"`
		DonorID        string    `json:"donor_id"`
		OrganizationID string    `json:"organization_id,omitempty"`
		Condition      string    `json:"condition"`
		ItemCount      int       `json:"item_count"`
		Date           string    `json:"date"`
		Notes          string    `json:"notes"`
		Image          string    `json:"image,omitempty"`
		ImageURL       string    `json:"image_url,omitempty"`
		Description    string    `json:"description"`
		ItemName       string    `json:"item_name"`
		Status         string    `json:"status"`
		CreatedAt      time.Time `json:"created_at"`
	}

	TransitionRequest struct {
		DonorID        string `json:"donor_id" validate:"required"`
		OrganizationID string `json:"organization_id" validate:"required"`
	}

	PickupRequest struct {
		DonorID        string `json:"donor_id" validate:"required"`
		OrganizationID string `json:"organization_id" validate:"required"`
		PickupDate     string `json:"pickup_date" validate:"required"`
		PickupTime     string `json:"pickup_time" validate:"required"`
	}

	PickupSchedule struct {
		ID             string    `json:"id"`
		DonorID        string    `json:"donor_id"`
		OrganizationID string    `json:"organization_id"`
		PickupDate     string    `json:"pickup_date"`
		PickupTime     string    `json:"pickup_time"`
		Status         string    `json:"status"`
		CreatedAt      time.Time `json:"created_at"`
	}

	PendingPickupsResponse struct {
		Donations []*Donation `json:"donations"`
		Total     int         `json:"total"`
	}

	DescribeImageRequest struct {
		Image    string `json:"image"`
		MimeType string `json:"mime_type"`
	}

	DescribeImageResponse struct {
		Description string `json:"description"`
	}
)
