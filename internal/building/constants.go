package building

// Log messages
const (
	LogMsgPurchaseBuildingCalled = "PurchaseBuilding called"
	LogMsgUpgradeBuildingCalled  = "UpgradeBuilding called"
	LogMsgBuildingPurchased      = "Building purchased"
	LogMsgBuildingUpgraded       = "Building upgraded"
)

// Error messages
const (
	ErrMsgBeginTxFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed = "failed to commit transaction: %w"
	ErrMsgDebitFailed    = "failed to debit coins: %w"
)
