package services

import (
	"context"
	"log"
	"strings"

	"testimonial/internal/infra"
	"testimonial/internal/models/db_models"
	"testimonial/internal/models/response_models"
	"testimonial/internal/repositories"
	"testimonial/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, email, password string) (*response_models.LoginResponse, error)
	EnsureOperatorAccount(ctx context.Context, config infra.Config) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// Login checks the operator credential and issues the session token admin
// calls must present. Lookup failures and password mismatches produce the
// same generic error.
func (a *AccountService) Login(ctx context.Context, email, password string) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User: response_models.UserProfile{
			ID:    account.ID.String(),
			Email: account.Email,
			Name:  account.Name,
			Role:  account.Role,
		},
	}, nil
}

// EnsureOperatorAccount idempotently seeds the single operator credential
// from configuration at startup. Nothing is seeded when the credentials are
// not configured.
func (a *AccountService) EnsureOperatorAccount(ctx context.Context, config infra.Config) error {
	if config.AdminEmail == "" || config.AdminPassword == "" {
		log.Println("Operator credentials not configured, skipping account bootstrap")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(config.AdminEmail))

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return nil
	}

	hashed, err := utils.HashPassword(config.AdminPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account := &db_models.Account{
		Email:        email,
		PasswordHash: hashed,
		Name:         config.AdminName,
		Role:         db_models.RoleAdmin,
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	log.Println("Operator account created successfully")
	return nil
}
