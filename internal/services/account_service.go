package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/schedule-api/internal/auth"
	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/repository"
	"github.com/yukikurage/schedule-api/internal/utils"
	"gorm.io/gorm"
)

// AccountService handles account and authentication business logic.
type AccountService struct {
	repo   repository.AccountRepository
	hasher auth.PasswordHasher
	tokens auth.TokenSigner
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo repository.AccountRepository, hasher auth.PasswordHasher, tokens auth.TokenSigner) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// CreateAccountInput represents the information required to register.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateAccountInput replaces the profile fields of an account.
type UpdateAccountInput struct {
	Name  string
	Email string
}

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

// Create registers a new account with a hashed password.
func (s *AccountService) Create(ctx context.Context, input CreateAccountInput) (*models.Account, error) {
	email := strings.TrimSpace(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Authenticate verifies the credentials and issues a signed token. Unknown
// emails and wrong passwords fail identically.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Sign(account.ID, account.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

// List returns every account ordered by name. The total is the unpaginated count.
func (s *AccountService) List(ctx context.Context, page *utils.PaginationParams) ([]models.Account, int64, error) {
	accounts, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, total, nil
}

// GetByID returns a single account.
func (s *AccountService) GetByID(ctx context.Context, id uint64) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

// Update replaces name and email. Uniqueness is only re-checked when the
// email changes.
func (s *AccountService) Update(ctx context.Context, id uint64, input UpdateAccountInput) (*models.Account, error) {
	account, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if email != account.Email {
		if _, err := s.repo.FindByEmail(ctx, email); err == nil {
			return nil, ErrEmailInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	account.Name = strings.TrimSpace(input.Name)
	account.Email = email
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// Delete removes an account that no task references.
func (s *AccountService) Delete(ctx context.Context, id uint64) error {
	count, err := s.repo.CountAssignedTasks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count assigned tasks: %w", err)
	}
	if count > 0 {
		return ErrResourceInUse
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if !existed {
		return ErrAccountNotFound
	}
	return nil
}
