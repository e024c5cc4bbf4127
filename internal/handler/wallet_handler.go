package handler

import (
	"net/http"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet CRUD requests
type WalletHandler struct {
	wallets repository.WalletRepository
	limits  PageLimits
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(wallets repository.WalletRepository, limits PageLimits) *WalletHandler {
	return &WalletHandler{wallets: wallets, limits: limits}
}

// Create handles wallet creation
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	wallet := &domain.Wallet{
		Owner:   req.Owner,
		Balance: req.Balance,
	}

	if err := h.wallets.Create(c.Request.Context(), wallet); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to create wallet",
		})
		return
	}

	c.JSON(http.StatusCreated, wallet)
}

// Get returns a wallet by id
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	wallet, err := h.wallets.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Wallet not found")
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// Update replaces a wallet's fields
func (h *WalletHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	wallet, err := h.wallets.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Wallet not found")
		return
	}

	wallet.Owner = req.Owner
	wallet.Balance = req.Balance

	if err := h.wallets.Update(c.Request.Context(), wallet); err != nil {
		respondRepoError(c, err, "Wallet not found")
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// Delete removes a wallet
func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.wallets.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "Wallet not found")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "delete success"})
}

// List returns one page of wallets
func (h *WalletHandler) List(c *gin.Context) {
	params := ParsePageParams(c, h.limits)

	wallets, total, err := h.wallets.List(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to list wallets",
		})
		return
	}

	c.JSON(http.StatusOK, dto.WalletList{
		Wallets:  wallets,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	})
}
