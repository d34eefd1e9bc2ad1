package repository

import "context"

// Economy defines the interface for shop transactions
type Economy interface {
	BeginTx(ctx context.Context) (EconomyTx, error)
}

// EconomyTx defines the interface for purchase and sell transactions
type EconomyTx interface {
	WalletTx
	InventoryTx
}
