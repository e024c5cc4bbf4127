package repository

import (
	"github.com/digimonhq/digimon-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User        UserRepository
	Item        ItemRepository
	Merchant    MerchantRepository
	Wallet      WalletRepository
	Transaction TransactionRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Item:        NewItemRepository(db),
		Merchant:    NewMerchantRepository(db),
		Wallet:      NewWalletRepository(db),
		Transaction: NewTransactionRepository(db),
	}
}
