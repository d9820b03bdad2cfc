package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/schedule-api/internal/dto"
	"github.com/yukikurage/schedule-api/internal/services"
	"github.com/yukikurage/schedule-api/internal/validation"
)

// AccountHandler serves account registration, login and management.
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Register creates a new account.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), services.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// Login authenticates an account and returns a bearer token.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	result, err := h.accountService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Account:   dto.ToAccountDTO(*result.Account),
	})
}

// ListAccounts returns every account ordered by name.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	page := pagination(c)

	accounts, total, err := h.accountService.List(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}

	respondList(c, dto.ToAccountDTOs(accounts), page, total)
}

// GetAccount returns a single account.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrAccountNotFound)
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// UpdateAccount replaces an account's name and email.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrAccountNotFound)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), id, services.UpdateAccountInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// DeleteAccount removes an account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrAccountNotFound)
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	deleted(c, "account deleted", id)
}
