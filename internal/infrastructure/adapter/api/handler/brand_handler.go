package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// BrandHandler handles the brand dashboard endpoints
type BrandHandler struct {
	brandUseCase usecase.BrandUseCase
	codeUseCase  usecase.CodeUseCase
	logger       coreport.Logger
}

// NewBrandHandler creates a new brand handler instance
func NewBrandHandler(
	brandUseCase usecase.BrandUseCase,
	codeUseCase usecase.CodeUseCase,
	logger coreport.Logger,
) *BrandHandler {
	return &BrandHandler{
		brandUseCase: brandUseCase,
		codeUseCase:  codeUseCase,
		logger:       logger,
	}
}

// CreateBrand handles POST /brands
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	brand, err := h.brandUseCase.CreateBrand(c.Request.Context(), usecase.CreateBrandRequest{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		respondError(c, h.logger, "Error creating brand", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBrandResponse(brand))
}

// ListBrands handles GET /brands?skip=&limit=
func (h *BrandHandler) ListBrands(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", usecase.DefaultListLimit)
	if !ok {
		return
	}

	brands, err := h.brandUseCase.ListBrands(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, h.logger, "Error listing brands", err)
		return
	}

	resp := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		resp = append(resp, dto.NewBrandResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

// GetBrand handles GET /brands/:brandId
func (h *BrandHandler) GetBrand(c *gin.Context) {
	brandID, ok := parseID(c, "brandId")
	if !ok {
		return
	}

	brand, err := h.brandUseCase.GetBrand(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, h.logger, "Error getting brand", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBrandResponse(brand))
}

// GetBrandStats handles GET /brands/:brandId/stats
func (h *BrandHandler) GetBrandStats(c *gin.Context) {
	brandID, ok := parseID(c, "brandId")
	if !ok {
		return
	}

	stats, err := h.brandUseCase.GetBrandStats(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, h.logger, "Error computing brand stats", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBrandStatsResponse(stats))
}

// ListBrandCodes handles GET /brands/:brandId/codes
func (h *BrandHandler) ListBrandCodes(c *gin.Context) {
	brandID, ok := parseID(c, "brandId")
	if !ok {
		return
	}

	codes, err := h.codeUseCase.ListBrandCodes(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, h.logger, "Error listing brand codes", err)
		return
	}

	resp := make([]dto.CodeResponse, 0, len(codes))
	for _, code := range codes {
		resp = append(resp, dto.NewCodeResponse(code))
	}
	c.JSON(http.StatusOK, resp)
}
