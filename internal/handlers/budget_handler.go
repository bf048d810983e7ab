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

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	CategoryID uint                `json:"categoryId" binding:"required"`
	Amount     decimal.Decimal     `json:"amount" swaggertype:"number"`
	Period     models.BudgetPeriod `json:"period" binding:"required,budget_period"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	CategoryID *uint                `json:"categoryId" binding:"omitempty,min=1"`
	Amount     *decimal.Decimal     `json:"amount" swaggertype:"number"`
	Period     *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
}

// CreateBudget handles the creation of a new budget
// @Summary     Create a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "User ID"
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/budget [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validator.BindingError(err, apperrors.ErrInvalidInput))
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req.CategoryID, req.Amount, req.Period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// GetUserBudgets handles listing a user's budgets
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id       path  int true  "User ID"
// @Param       page     query int false "Page number (default 1)"
// @Param       pageSize query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/budget [get]
func (h *BudgetHandler) GetUserBudgets(c *gin.Context) {
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

	result, err := h.budgetService.GetUserBudgets(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudgetByID handles fetching a single budget
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int true "User ID"
// @Param       budgetId path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/budget/{budgetId} [get]
func (h *BudgetHandler) GetBudgetByID(c *gin.Context) {
	userID, budgetID, ok := budgetPath(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpdateBudget handles updating a budget
// @Summary     Update a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int                 true "User ID"
// @Param       budgetId path int                 true "Budget ID"
// @Param       request  body UpdateBudgetRequest true "Fields to update"
// @Success     200 {object} models.Budget "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/budget/{budgetId} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, budgetID, ok := budgetPath(c)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validator.BindingError(err, apperrors.ErrInvalidInput))
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, budgetID, services.BudgetUpdate{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles deleting a budget
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int true "User ID"
// @Param       budgetId path int true "Budget ID"
// @Success     200 {object} models.Budget "Deleted budget"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/budget/{budgetId} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, budgetID, ok := budgetPath(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.DeleteBudget(c.Request.Context(), userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// GetBudgetProgress handles fetching budget progress for the current period
// @Summary     Get budget progress
// @Description Sum the category's expenses in the current period against the budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id       path int true "User ID"
// @Param       budgetId path int true "Budget ID"
// @Success     200 {object} services.BudgetProgress "Budget progress"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user/{id}/budget/{budgetId}/progress [get]
func (h *BudgetHandler) GetBudgetProgress(c *gin.Context) {
	userID, budgetID, ok := budgetPath(c)
	if !ok {
		return
	}

	progress, err := h.budgetService.GetBudgetProgress(c.Request.Context(), userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func budgetPath(c *gin.Context) (uint, uint, bool) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return 0, 0, false
	}
	budgetID, err := parsePathID(c, "budgetId", "budget")
	if err != nil {
		respondWithError(c, err)
		return 0, 0, false
	}
	return userID, budgetID, true
}
