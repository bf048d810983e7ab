package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/services"
	"github.com/prubianes/guit-app-api/internal/validator"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
// Balance is the opening balance and may be negative for credit accounts.
type CreateAccountRequest struct {
	Name    string             `json:"name" binding:"required,min=1,max=100"`
	Type    models.AccountType `json:"type" binding:"omitempty,max=50"`
	Balance *decimal.Decimal   `json:"balance" swaggertype:"number"`
}

// UpdateAccountRequest represents the request payload for updating an account.
// The balance is not updatable here.
type UpdateAccountRequest struct {
	Name *string             `json:"name" binding:"omitempty,min=1,max=100"`
	Type *models.AccountType `json:"type" binding:"omitempty,min=1,max=50"`
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "User ID"
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/account [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validator.BindingError(err, apperrors.ErrInvalidInput))
		return
	}

	opening := decimal.Zero
	if req.Balance != nil {
		opening = *req.Balance
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req.Name, req.Type, opening)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetUserAccounts handles the retrieval of a user's accounts
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id       path  int true  "User ID"
// @Param       page     query int false "Page number (default 1)"
// @Param       pageSize query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Account] "Paginated accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/account [get]
func (h *AccountHandler) GetUserAccounts(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.accountService.GetUserAccounts(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountByID handles the retrieval of a specific account
// @Summary     Get account by ID
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id        path int true "User ID"
// @Param       accountId path int true "Account ID"
// @Success     200 {object} models.Account "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/account/{accountId} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	userID, accountID, ok := accountPath(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAccount handles updates to an account's name or type
// @Summary     Update an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path int                  true "User ID"
// @Param       accountId path int                  true "Account ID"
// @Param       request   body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} models.Account "Account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/account/{accountId} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, accountID, ok := accountPath(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validator.BindingError(err, apperrors.ErrInvalidInput))
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, accountID, req.Name, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles the deletion of an account and its transactions
// @Summary     Delete an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id        path int true "User ID"
// @Param       accountId path int true "Account ID"
// @Success     200 {object} models.Account "Deleted account"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/account/{accountId} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, accountID, ok := accountPath(c)
	if !ok {
		return
	}

	account, err := h.accountService.DeleteAccount(c.Request.Context(), userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// accountPath parses both path IDs, writing the error response on failure.
func accountPath(c *gin.Context) (uint, uint, bool) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return 0, 0, false
	}
	accountID, err := parsePathID(c, "accountId", "account")
	if err != nil {
		respondWithError(c, err)
		return 0, 0, false
	}
	return userID, accountID, true
}
