package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles item CRUD requests
type ItemHandler struct {
	items  repository.ItemRepository
	limits PageLimits
}

// NewItemHandler creates a new item handler
func NewItemHandler(items repository.ItemRepository, limits PageLimits) *ItemHandler {
	return &ItemHandler{items: items, limits: limits}
}

// Create handles item creation. The owning user comes from the access token,
// not the payload.
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	item := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tax:         req.Tax,
		MerchantID:  req.MerchantID,
		UserID:      userID,
	}

	if err := h.items.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to create item",
		})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Get returns an item by id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update replaces an item's fields
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Item not found")
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Tax = req.Tax
	item.MerchantID = req.MerchantID

	if err := h.items.Update(c.Request.Context(), item); err != nil {
		respondRepoError(c, err, "Item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes an item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "Item not found")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "delete success"})
}

// List returns one page of items
func (h *ItemHandler) List(c *gin.Context) {
	params := ParsePageParams(c, h.limits)

	items, total, err := h.items.List(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to list items",
		})
		return
	}

	c.JSON(http.StatusOK, dto.ItemList{
		Items:    items,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	})
}

// pathID parses the numeric :id path parameter shared by the CRUD handlers.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Invalid id",
		})
		return 0, false
	}
	return id, true
}

func respondRepoError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: notFoundMsg,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Message: "Storage error",
	})
}
