package handler

import (
	"net/http"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/gin-gonic/gin"
)

// MerchantHandler handles merchant CRUD requests
type MerchantHandler struct {
	merchants repository.MerchantRepository
	limits    PageLimits
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchants repository.MerchantRepository, limits PageLimits) *MerchantHandler {
	return &MerchantHandler{merchants: merchants, limits: limits}
}

// Create handles merchant creation for the authenticated user
func (h *MerchantHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	merchant := &domain.Merchant{
		Name:        req.Name,
		Description: req.Description,
		TaxID:       req.TaxID,
		UserID:      userID,
	}

	if err := h.merchants.Create(c.Request.Context(), merchant); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to create merchant",
		})
		return
	}

	c.JSON(http.StatusCreated, merchant)
}

// Get returns a merchant by id
func (h *MerchantHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	merchant, err := h.merchants.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Merchant not found")
		return
	}

	c.JSON(http.StatusOK, merchant)
}

// Update replaces a merchant's fields
func (h *MerchantHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	merchant, err := h.merchants.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Merchant not found")
		return
	}

	merchant.Name = req.Name
	merchant.Description = req.Description
	merchant.TaxID = req.TaxID

	if err := h.merchants.Update(c.Request.Context(), merchant); err != nil {
		respondRepoError(c, err, "Merchant not found")
		return
	}

	c.JSON(http.StatusOK, merchant)
}

// Delete removes a merchant
func (h *MerchantHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.merchants.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "Merchant not found")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "delete success"})
}

// List returns one page of merchants
func (h *MerchantHandler) List(c *gin.Context) {
	params := ParsePageParams(c, h.limits)

	merchants, total, err := h.merchants.List(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to list merchants",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MerchantList{
		Merchants: merchants,
		Page:      params.Page,
		PageSize:  params.PageSize,
		Total:     total,
	})
}
