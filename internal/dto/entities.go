package dto

import "github.com/digimonhq/digimon-service/internal/domain"

// CreateItemRequest carries the fields accepted on item creation and update.
type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" binding:"min=0"`
	Tax         *float64 `json:"tax"`
	MerchantID  int64    `json:"merchant_id" binding:"required"`
}

// CreateMerchantRequest carries the fields accepted on merchant creation and update.
type CreateMerchantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	TaxID       *string `json:"tax_id"`
}

// CreateWalletRequest carries the fields accepted on wallet creation and update.
type CreateWalletRequest struct {
	Owner   string  `json:"owner" binding:"required"`
	Balance float64 `json:"balance" binding:"min=0"`
}

// CreateTransactionRequest carries the fields accepted on transaction creation and update.
type CreateTransactionRequest struct {
	Sender   string  `json:"sender" binding:"required"`
	Receiver string  `json:"receiver" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

// ItemList is a paginated page of items.
type ItemList struct {
	Items    []*domain.Item `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
}

// MerchantList is a paginated page of merchants.
type MerchantList struct {
	Merchants []*domain.Merchant `json:"merchants"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
	Total     int                `json:"total"`
}

// WalletList is a paginated page of wallets.
type WalletList struct {
	Wallets  []*domain.Wallet `json:"wallets"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}

// TransactionList is a paginated page of transactions.
type TransactionList struct {
	Transactions []*domain.Transaction `json:"transactions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	Total        int                   `json:"total"`
}
