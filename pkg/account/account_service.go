package account

import (
	"Donation-Hub/domain"
	"Donation-Hub/entities"
	"Donation-Hub/internal/utils"
	"Donation-Hub/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	AccountService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	}

	accountService struct {
		accountRepository AccountRepository
		jwtService        jwt.JWTService
		validator         *validator.Validate
	}
)

func NewAccountService(accountRepository AccountRepository, jwtService jwt.JWTService, validator *validator.Validate) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		jwtService:        jwtService,
		validator:         validator,
	}
}

func (s *accountService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return domain.RegisterResponse{}, domain.ErrMissingCredentials
	}
	if err := utils.ValidateStruct(s.validator, req, domain.ErrMissingCredentials); err != nil {
		return domain.RegisterResponse{}, err
	}

	kind := domain.NormalizeUserType(req.UserType)

	_, err := s.accountRepository.GetAccountByEmail(ctx, req.Email, kind)
	if err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	account := &entities.Account{
		Email:           req.Email,
		Password:        string(hashedPassword),
		Kind:            kind,
		DetailsComplete: false,
	}
	if err := s.accountRepository.CreateAccount(ctx, account); err != nil {
		// a concurrent registration can win between the lookup and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueConstraintError(err) {
			return domain.RegisterResponse{}, domain.ErrEmailExists
		}
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		AccountID: account.ID.String(),
		UserType:  kind,
	}, nil
}

func (s *accountService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	kind := domain.NormalizeUserType(req.UserType)

	account, err := s.accountRepository.GetAccountByEmail(ctx, req.Email, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(account.ID.String(), account.Kind)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccountID:       account.ID.String(),
		UserType:        account.Kind,
		DetailsComplete: account.DetailsComplete,
		Token:           token,
	}, nil
}

func isUniqueConstraintError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
