package handler

import (
	"net/http"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction CRUD requests
type TransactionHandler struct {
	transactions repository.TransactionRepository
	limits       PageLimits
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions repository.TransactionRepository, limits PageLimits) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, limits: limits}
}

// Create handles transaction creation
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	tx := &domain.Transaction{
		Sender:   req.Sender,
		Receiver: req.Receiver,
		Amount:   req.Amount,
	}

	if err := h.transactions.Create(c.Request.Context(), tx); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to create transaction",
		})
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// Get returns a transaction by id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := h.transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, tx)
}

// Update replaces a transaction's fields
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	tx, err := h.transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Transaction not found")
		return
	}

	tx.Sender = req.Sender
	tx.Receiver = req.Receiver
	tx.Amount = req.Amount

	if err := h.transactions.Update(c.Request.Context(), tx); err != nil {
		respondRepoError(c, err, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, tx)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "delete success"})
}

// List returns one page of transactions
func (h *TransactionHandler) List(c *gin.Context) {
	params := ParsePageParams(c, h.limits)

	txs, total, err := h.transactions.List(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to list transactions",
		})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionList{
		Transactions: txs,
		Page:         params.Page,
		PageSize:     params.PageSize,
		Total:        total,
	})
}
