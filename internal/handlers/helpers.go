package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/middleware"
	"github.com/prubianes/guit-app-api/internal/pagination"
	"github.com/prubianes/guit-app-api/internal/validator"
)

// parsePathID parses the named path parameter as a record ID. entity names
// the record in the INVALID_ID message.
func parsePathID(c *gin.Context, param, entity string) (uint, error) {
	return validator.ParseID(c.Param(param), entity)
}

// pathUserID parses the :id segment of a /user/:id route. If the request is
// authenticated the segment must name the caller.
func pathUserID(c *gin.Context) (uint, error) {
	userID, err := parsePathID(c, "id", "user")
	if err != nil {
		return 0, err
	}
	if authed, ok := c.Get(middleware.UserIDKey); ok {
		if uid, ok := authed.(uint); ok && uid != userID {
			return 0, apperrors.ErrForbidden
		}
	}
	return userID, nil
}

// bindPage reads page and pageSize from the query string.
func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "page must be at least 1 and pageSize between 1 and 100")
	}
	return page, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
