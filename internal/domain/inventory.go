package domain

import "time"

// ItemType classifies inventory entries
type ItemType string

const (
	ItemTypeSeed    ItemType = "seed"
	ItemTypeAnimal  ItemType = "animal"
	ItemTypeProduct ItemType = "product"
)

// Tradable reports whether the shop buys and sells this item type
func (t ItemType) Tradable() bool {
	return t == ItemTypeSeed || t == ItemTypeAnimal
}

// InventoryItem is a stack of one item. Rows with zero quantity are deleted.
type InventoryItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ItemType   ItemType  `json:"item_type"`
	ItemCode   string    `json:"item_code"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}
