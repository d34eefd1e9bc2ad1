package economy

import (
	"context"
	"fmt"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/metrics"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Service defines the shop operations
type Service interface {
	// PurchaseItem buys quantity of a seed or animal and adds it to inventory
	PurchaseItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.PurchaseResult, error)

	// SellItem sells quantity of a seed or animal from inventory
	SellItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.SellResult, error)
}

// Catalog resolves shop definitions
type Catalog interface {
	GetSeed(ctx context.Context, code string) (*domain.SeedType, error)
	GetAnimal(ctx context.Context, code string) (*domain.AnimalType, error)
}

type service struct {
	repo    repository.Economy
	catalog Catalog
}

// NewService creates a new economy service
func NewService(repo repository.Economy, catalog Catalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
	}
}

// listing is the tradable view of a seed or animal type
type listing struct {
	BuyPrice    int
	SellPrice   int
	UnlockLevel int
}

func (s *service) lookupListing(ctx context.Context, itemType domain.ItemType, itemCode string) (*listing, error) {
	switch itemType {
	case domain.ItemTypeSeed:
		seed, err := s.catalog.GetSeed(ctx, itemCode)
		if err != nil {
			return nil, err
		}
		return &listing{BuyPrice: seed.BasePrice, SellPrice: seed.SellPrice, UnlockLevel: seed.UnlockLevel}, nil
	case domain.ItemTypeAnimal:
		animal, err := s.catalog.GetAnimal(ctx, itemCode)
		if err != nil {
			return nil, err
		}
		return &listing{BuyPrice: animal.BasePrice, SellPrice: animal.SellPrice, UnlockLevel: animal.UnlockLevel}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemType, itemType)
	}
}

func validateTrade(userID string, itemType domain.ItemType, itemCode string, quantity int) error {
	if userID == "" || itemCode == "" {
		return fmt.Errorf("%w: userId and itemCode are required", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if !itemType.Tradable() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidItemType, itemType)
	}
	return nil
}

func (s *service) PurchaseItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseItemCalled, "userID", userID, "itemType", itemType, "itemCode", itemCode, "quantity", quantity)

	if err := validateTrade(userID, itemType, itemCode, quantity); err != nil {
		return nil, err
	}

	item, err := s.lookupListing(ctx, itemType, itemCode)
	if err != nil {
		return nil, err
	}
	totalCost := item.BuyPrice * quantity

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !MeetsLevel(user.Level, item.UnlockLevel) {
		return nil, fmt.Errorf("%w: requires level %d", domain.ErrLevelLocked, item.UnlockLevel)
	}
	if !CanAfford(user.Coin, totalCost) {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, totalCost, user.Coin)
	}

	coinsLeft, err := tx.DebitCoins(ctx, userID, totalCost)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDebitFailed, err)
	}
	if err := tx.AddInventory(ctx, userID, itemType, itemCode, quantity); err != nil {
		return nil, fmt.Errorf(ErrMsgInventoryFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.ItemsBought.WithLabelValues(string(itemType), itemCode).Add(float64(quantity))
	metrics.CoinsSpent.WithLabelValues(metrics.CoinFlowPurchase).Add(float64(totalCost))
	log.Info(LogMsgPurchaseCompleted, "userID", userID, "itemCode", itemCode, "totalCost", totalCost, "coinsLeft", coinsLeft)

	return &domain.PurchaseResult{
		Success:   true,
		CoinsLeft: coinsLeft,
		TotalCost: totalCost,
		Quantity:  quantity,
	}, nil
}

func (s *service) SellItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellItemCalled, "userID", userID, "itemType", itemType, "itemCode", itemCode, "quantity", quantity)

	if err := validateTrade(userID, itemType, itemCode, quantity); err != nil {
		return nil, err
	}

	item, err := s.lookupListing(ctx, itemType, itemCode)
	if err != nil {
		return nil, err
	}
	earnings := item.SellPrice * quantity

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, err
	}

	stack, err := tx.GetInventoryItemForUpdate(ctx, userID, itemType, itemCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	if stack == nil {
		return nil, domain.ErrInventoryItemNotFound
	}
	if stack.Quantity < quantity {
		return nil, fmt.Errorf("%w: have %d, selling %d", domain.ErrInsufficientInventory, stack.Quantity, quantity)
	}

	if err := tx.SetInventoryQuantity(ctx, stack.ID, stack.Quantity-quantity); err != nil {
		return nil, fmt.Errorf(ErrMsgInventoryFailed, err)
	}
	balance, err := tx.CreditCoins(ctx, userID, earnings)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.ItemsSold.WithLabelValues(string(itemType), itemCode).Add(float64(quantity))
	metrics.CoinsEarned.WithLabelValues(metrics.CoinFlowSell).Add(float64(earnings))
	log.Info(LogMsgSellCompleted, "userID", userID, "itemCode", itemCode, "earnings", earnings, "balance", balance)

	return &domain.SellResult{
		Success:        true,
		CoinsEarned:    earnings,
		NewCoinBalance: balance,
		QuantitySold:   quantity,
	}, nil
}
