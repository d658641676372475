package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// RewardHandler handles the mobile scan and game endpoints
type RewardHandler struct {
	rewardUseCase usecase.RewardUseCase
	logger        coreport.Logger
}

// NewRewardHandler creates a new reward handler instance
func NewRewardHandler(rewardUseCase usecase.RewardUseCase, logger coreport.Logger) *RewardHandler {
	return &RewardHandler{
		rewardUseCase: rewardUseCase,
		logger:        logger,
	}
}

// Scan handles POST /scan/:token
func (h *RewardHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	attempt, err := h.rewardUseCase.RegisterScanAttempt(c.Request.Context(), req.UserID, c.Param("token"))
	if err != nil {
		respondError(c, h.logger, "Error registering scan", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScanResponse(attempt))
}

// PlayGame handles POST /game/play
func (h *RewardHandler) PlayGame(c *gin.Context) {
	var req dto.GamePlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.rewardUseCase.CompleteGame(c.Request.Context(), usecase.CompleteGameRequest{
		UserID:    req.UserID,
		CodeID:    req.CodeID,
		GameLabel: req.GameLabel,
		GameScore: req.GameScore,
	})
	if err != nil {
		respondError(c, h.logger, "Error completing game", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGamePlayResponse(result))
}
