package farm

// Log messages
const (
	LogMsgPlantSeedCalled   = "PlantSeed called"
	LogMsgHarvestCropCalled = "HarvestCrop called"
	LogMsgUnlockPlotCalled  = "UnlockPlot called"
	LogMsgSeedPlanted     = "Seed planted"
	LogMsgCropHarvested   = "Crop harvested"
	LogMsgPlotUnlocked    = "Plot unlocked"
	LogMsgCropsPromoted   = "Promoted ready crops"
	LogMsgPromotionFailed = "Failed to promote ready crops"
	LogMsgSeedStockFailed = "Failed to consume seed from inventory"
)

// Error messages
const (
	ErrMsgBeginTxFailed   = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed  = "failed to commit transaction: %w"
	ErrMsgDebitFailed     = "failed to debit coins: %w"
	ErrMsgCreditFailed    = "failed to credit coins: %w"
	ErrMsgGetCropFailed   = "failed to check plot for crop: %w"
	ErrMsgInsertCrop      = "failed to plant crop: %w"
	ErrMsgDeleteCrop      = "failed to remove harvested crop: %w"
	ErrMsgProgressFailed  = "failed to update progress: %w"
	ErrMsgUnlockFailed    = "failed to unlock plot: %w"
	ErrMsgGetFarmFailed   = "failed to load farm: %w"
	ErrMsgSeedStockFailed = "failed to consume seed: %w"
)
