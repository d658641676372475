package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase usecase.UserUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	user, err := h.userUseCase.CreateUser(c.Request.Context(), usecase.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, h.logger, "Error creating user", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetUser handles GET /users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	user, err := h.userUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "Error getting user", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetUserHistory handles GET /users/:userId/history
func (h *UserHandler) GetUserHistory(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	history, err := h.userUseCase.GetUserHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "Error getting user history", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserHistoryResponse(history))
}
