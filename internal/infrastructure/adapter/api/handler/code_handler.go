package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CodeHandler handles code issuance and QR image endpoints
type CodeHandler struct {
	codeUseCase usecase.CodeUseCase
	logger      coreport.Logger
}

// NewCodeHandler creates a new code handler instance
func NewCodeHandler(codeUseCase usecase.CodeUseCase, logger coreport.Logger) *CodeHandler {
	return &CodeHandler{
		codeUseCase: codeUseCase,
		logger:      logger,
	}
}

// CreateCode handles POST /codes
func (h *CodeHandler) CreateCode(c *gin.Context) {
	var req dto.CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	code, err := h.codeUseCase.CreateCode(c.Request.Context(), toCreateCodeRequest(req))
	if err != nil {
		respondError(c, h.logger, "Error creating code", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCodeResponse(code))
}

// CreateCodeWithImage handles POST /codes/with-image?size=
func (h *CodeHandler) CreateCodeWithImage(c *gin.Context) {
	size, ok := optionalQueryInt(c, "size")
	if !ok {
		return
	}

	var req dto.CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	img, err := h.codeUseCase.CreateCodeWithImage(c.Request.Context(), toCreateCodeRequest(req), size)
	if err != nil {
		respondError(c, h.logger, "Error creating code with image", err)
		return
	}

	c.JSON(http.StatusCreated, dto.CodeWithImageResponse{
		CodeResponse:  dto.NewCodeResponse(img.Code),
		ScanURL:       img.ScanURL,
		QRImageBase64: dto.PNGDataURL(img.PNG),
	})
}

// GetCodeImage handles GET /codes/:token/image?size=
func (h *CodeHandler) GetCodeImage(c *gin.Context) {
	size, ok := optionalQueryInt(c, "size")
	if !ok {
		return
	}

	img, err := h.codeUseCase.RenderCodeImage(c.Request.Context(), c.Param("token"), size)
	if err != nil {
		respondError(c, h.logger, "Error rendering code image", err)
		return
	}

	c.Data(http.StatusOK, "image/png", img.PNG)
}

func toCreateCodeRequest(req dto.CreateCodeRequest) usecase.CreateCodeRequest {
	return usecase.CreateCodeRequest{
		BrandID:     req.BrandID,
		PointsValue: req.PointsValue,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
}
