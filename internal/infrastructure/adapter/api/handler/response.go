package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// clientErrors lists the sentinels whose text is safe to return to callers.
// Inactive precedes not-found since CodeInactiveError matches both.
var clientErrors = []error{
	domainerr.ErrCodeInactive,
	domainerr.ErrCodeNotFound,
	domainerr.ErrBrandNotFound,
	domainerr.ErrUserNotFound,
	domainerr.ErrDuplicateScan,
	domainerr.ErrDuplicateUser,
	domainerr.ErrDuplicateCodeToken,
	domainerr.ErrConcurrentUpdate,
	domainerr.ErrPointsOverflow,
	domainerr.ErrInvalidBrandName,
	domainerr.ErrInvalidPointsValue,
	domainerr.ErrNegativePoints,
	domainerr.ErrInvalidGameScore,
	domainerr.ErrInvalidUserData,
	domainerr.ErrInvalidID,
	domainerr.ErrInvalidImageSize,
	domainerr.ErrInvalidRequest,
}

// statusCode maps a domain error to its HTTP status
func statusCode(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsConflictError(err):
		return http.StatusConflict
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the public message for err. Server-side failures are
// never described to the caller.
func errorMessage(err error) string {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Internal server error"
}

// respondError logs err and writes the matching error response
func respondError(c *gin.Context, logger coreport.Logger, msg string, err error) {
	status := statusCode(err)

	fields := map[string]any{
		"path":   c.FullPath(),
		"status": status,
		"error":  err.Error(),
	}
	var detailed interface{ LogFields() map[string]any }
	if errors.As(err, &detailed) {
		for k, v := range detailed.LogFields() {
			fields[k] = v
		}
	}
	if requestID, ok := c.Get(middleware.RequestIDKey); ok {
		fields["request_id"] = requestID
	}

	if status >= http.StatusInternalServerError {
		logger.Error(msg, fields)
	} else {
		logger.Warn(msg, fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: errorMessage(err),
	})
}

// respondBadRequest writes a 400 for a malformed request
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: message,
	})
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidID),
			Message: "Invalid " + name + " format",
		})
		return 0, false
	}
	return id, true
}

// optionalQueryInt reads an integer query parameter, returning nil when it
// is absent so callers can tell a missing value from an explicit zero
func optionalQueryInt(c *gin.Context, name string) (*int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "Invalid query parameter: "+name)
		return nil, false
	}
	return &v, true
}

// queryInt reads an optional non-negative integer query parameter
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondBadRequest(c, "Invalid query parameter: "+name)
		return 0, false
	}
	return v, true
}
