package domain

import (
	"errors"
	"fmt"
)

const (
	RoleDonor        = "donor"
	RoleOrganization = "organization"

	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageUnauthenticated      = "authentication required"

	// Error categories. Every error returned by a service wraps exactly one
	// of these so the presenter can pick the response status.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")

	ErrParseUUID     = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrTokenInvalid  = fmt.Errorf("%w: token invalid", ErrAuth)
	ErrTokenExpired  = fmt.Errorf("%w: token expired", ErrAuth)
	ErrTokenNotFound = fmt.Errorf("%w: token not found", ErrAuth)
	ErrTokenRevoked  = fmt.Errorf("%w: token revoked", ErrAuth)
)

// Identity is the authenticated caller, resolved from the session cookie or
// a bearer token and handed to handlers through the request locals.
type Identity struct {
	AccountID string `json:"account_id"`
	UserType  string `json:"user_type"`
}

// NormalizeUserType maps anything that is not a donor to an organization.
func NormalizeUserType(userType string) string {
	if userType == RoleDonor {
		return RoleDonor
	}
	return RoleOrganization
}
