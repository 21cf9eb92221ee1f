package domain

import (
	"fmt"
)

var (
	MessageSuccessRegister = "registration successful"
	MessageSuccessLogin    = "login successful"
	MessageSuccessLogout   = "logged out successfully"
	MessageSuccessMe       = "identity retrieved successfully"

	MessageFailedRegister = "failed to register"
	MessageFailedLogin    = "failed to login"
	MessageFailedLogout   = "failed to logout"

	ErrMissingCredentials = fmt.Errorf("%w: email and password are required", ErrValidation)
	ErrEmailExists        = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", ErrNotFound)
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
		UserType string `json:"user_type"`
	}

	RegisterResponse struct {
		AccountID string `json:"account_id"`
		UserType  string `json:"user_type"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
		UserType string `json:"user_type"`
	}

	LoginResponse struct {
		AccountID       string `json:"account_id"`
		UserType        string `json:"user_type"`
		DetailsComplete bool   `json:"details_complete"`
		Token           string `json:"token,omitempty"`
	}
)
