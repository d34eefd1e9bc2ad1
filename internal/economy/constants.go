package economy

// Log messages
const (
	LogMsgPurchaseItemCalled = "PurchaseItem called"
	LogMsgSellItemCalled     = "SellItem called"
	LogMsgPurchaseCompleted = "Item purchased"
	LogMsgSellCompleted     = "Item sold"
)

// Error messages
const (
	ErrMsgBeginTxFailed   = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed  = "failed to commit transaction: %w"
	ErrMsgGetUserFailed   = "failed to get user: %w"
	ErrMsgDebitFailed     = "failed to debit coins: %w"
	ErrMsgCreditFailed    = "failed to credit coins: %w"
	ErrMsgInventoryFailed = "failed to update inventory: %w"
)
