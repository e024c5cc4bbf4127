package domain

// Item is a sellable good owned by a user and listed under a merchant.
type Item struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description *string  `json:"description" db:"description"`
	Price       float64  `json:"price" db:"price"`
	Tax         *float64 `json:"tax" db:"tax"`
	MerchantID  int64    `json:"merchant_id" db:"merchant_id"`
	UserID      string   `json:"user_id" db:"user_id"`
}

// Merchant is a storefront owned by a user.
type Merchant struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	TaxID       *string `json:"tax_id" db:"tax_id"`
	UserID      string  `json:"user_id" db:"user_id"`
}

// Wallet holds a balance for a named owner.
type Wallet struct {
	ID      int64   `json:"id" db:"id"`
	Owner   string  `json:"owner" db:"owner"`
	Balance float64 `json:"balance" db:"balance"`
}

// Transaction records a transfer between two parties.
type Transaction struct {
	ID       int64   `json:"id" db:"id"`
	Sender   string  `json:"sender" db:"sender"`
	Receiver string  `json:"receiver" db:"receiver"`
	Amount   float64 `json:"amount" db:"amount"`
}
