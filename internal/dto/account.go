package dto

import (
	"time"

	"github.com/yukikurage/schedule-api/internal/models"
)

// RegisterRequest is the body of POST /api/accounts/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/accounts/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest is the body of PUT /api/accounts/:id
type UpdateAccountRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// AccountDTO represents an account in API responses
type AccountDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountSummaryDTO is the pick-list shape of an account
type AccountSummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Account   AccountDTO `json:"account"`
}

// ToAccountDTO converts an Account model to AccountDTO
func ToAccountDTO(account models.Account) AccountDTO {
	return AccountDTO{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ToAccountDTOs converts a slice of accounts
func ToAccountDTOs(accounts []models.Account) []AccountDTO {
	items := make([]AccountDTO, len(accounts))
	for i, account := range accounts {
		items[i] = ToAccountDTO(account)
	}
	return items
}
