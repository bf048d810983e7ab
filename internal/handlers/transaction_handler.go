package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/services"
	"github.com/prubianes/guit-app-api/internal/validator"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest is the payload of a transaction create or update.
// Amount may be a JSON number or a numeric string. On update an omitted
// date or description keeps the stored value.
type TransactionRequest struct {
	AccountID   uint                   `json:"accountId" binding:"required"`
	CategoryID  uint                   `json:"categoryId" binding:"required"`
	Amount      json.RawMessage        `json:"amount" swaggertype:"number"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Date        string                 `json:"date"`
	Description *string                `json:"description" binding:"omitempty,max=500"`
}

// bindTransaction reads a TransactionRequest into engine input. Every
// failure here happens before the engine is called.
func bindTransaction(c *gin.Context) (services.TransactionInput, error) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.TransactionInput{}, validator.BindingError(err, apperrors.ErrInvalidTransactionData)
	}

	amount, err := validator.ParseAmount(req.Amount)
	if err != nil {
		return services.TransactionInput{}, err
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := validator.ParseDate(req.Date)
		if err != nil {
			return services.TransactionInput{}, err
		}
		date = &parsed
	}

	return services.TransactionInput{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      amount,
		Type:        req.Type,
		Date:        date,
		Description: req.Description,
	}, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record income or an expense and apply it to the account balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "User ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input, err := bindTransaction(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetUserTransactions handles the retrieval of a user's transactions
// @Summary     List transactions
// @Description Get a paginated list of the user's transactions, newest first, with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  int    true  "User ID"
// @Param       page       query int    false "Page number (default 1)"
// @Param       pageSize   query int    false "Items per page (default 20, max 100)"
// @Param       accountId  query int    false "Filter by account ID"
// @Param       categoryId query int    false "Filter by category ID"
// @Param       type       query string false "Filter by type (income, expense)"
// @Param       fromDate   query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       toDate     query string false "Filter by end date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
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

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(c.Request.Context(), userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("accountId"); v != "" {
		id, err := validator.ParseID(v, "account")
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid accountId")
		}
		filter.AccountID = &id
	}

	if v := c.Query("categoryId"); v != "" {
		id, err := validator.ParseID(v, "category")
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid categoryId")
		}
		filter.CategoryID = &id
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		if !txType.IsValid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense")
		}
		filter.Type = &txType
	}

	if v := c.Query("fromDate"); v != "" {
		t, err := validator.ParseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid fromDate format, use RFC3339 or YYYY-MM-DD")
		}
		t = t.UTC()
		filter.FromDate = &t
	}

	if v := c.Query("toDate"); v != "" {
		t, err := validator.ParseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid toDate format, use RFC3339 or YYYY-MM-DD")
		}
		// A bare date covers the whole day.
		if validator.IsDateOnly(v) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		t = t.UTC()
		filter.ToDate = &t
	}

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id            path int true "User ID"
// @Param       transactionId path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/transactions/{transactionId} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "transactionId", "transaction")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles the update of an existing transaction
// @Summary     Update a transaction
// @Description Overwrite a transaction and reconcile the account balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id            path int                true "User ID"
// @Param       transactionId path int                true "Transaction ID"
// @Param       request       body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction or account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/transactions/{transactionId} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "transactionId", "transaction")
	if err != nil {
		respondWithError(c, err)
		return
	}

	input, err := bindTransaction(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, transactionID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete a transaction
// @Description Reverse the transaction's balance effect and delete it
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id            path int true "User ID"
// @Param       transactionId path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Deleted transaction"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction or account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/transactions/{transactionId} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "transactionId", "transaction")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}
