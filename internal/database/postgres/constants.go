package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised by the coin >= 0 and quantity > 0 guards
	PgErrorCodeCheckViolation = "23514"
)

// Constraint names the repositories translate into domain errors
const (
	ConstraintCropPlot         = "user_crops_plot_id_key"
	ConstraintUserBuildingCode = "user_buildings_user_id_building_code_key"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToGetUser        = "failed to get user"
	ErrMsgFailedToInsertUser     = "failed to insert user"
	ErrMsgFailedToUpdateUser     = "failed to update user"
	ErrMsgFailedToDebitCoins     = "failed to debit coins"
	ErrMsgFailedToCreditCoins    = "failed to credit coins"
	ErrMsgFailedToUpdateProgress = "failed to update progress"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToAddInventory    = "failed to add inventory"
	ErrMsgFailedToUpdateInventory = "failed to update inventory"
)

// Error Messages - Farm Operations
const (
	ErrMsgFailedToGetFarm      = "failed to get farm"
	ErrMsgFailedToGetPlot      = "failed to get plot"
	ErrMsgFailedToInsertPlots  = "failed to insert plots"
	ErrMsgFailedToUnlockPlot   = "failed to unlock plot"
	ErrMsgFailedToGetCrop      = "failed to get crop"
	ErrMsgFailedToInsertCrop   = "failed to insert crop"
	ErrMsgFailedToDeleteCrop   = "failed to delete crop"
	ErrMsgFailedToMarkReady    = "failed to mark crops ready"
	ErrMsgFailedToScanFarmRow  = "failed to scan farm row"
	ErrMsgFailedToDecodeLevels = "failed to decode level config"
)

// Error Messages - Building Operations
const (
	ErrMsgFailedToGetBuildings   = "failed to get buildings"
	ErrMsgFailedToGetAnimals     = "failed to get animals"
	ErrMsgFailedToInsertBuilding = "failed to insert building"
	ErrMsgFailedToUpdateBuilding = "failed to update building"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetCatalog      = "failed to get catalog entry"
	ErrMsgFailedToListCatalog     = "failed to list catalog"
	ErrMsgFailedToUpsertCatalog   = "failed to upsert catalog entry"
	ErrMsgFailedToGetSyncMetadata = "failed to get sync metadata"
	ErrMsgFailedToSaveSyncMeta    = "failed to save sync metadata"
)

// Error Messages - Processed Actions
const (
	ErrMsgFailedToClaimAction    = "failed to claim action"
	ErrMsgFailedToCompleteAction = "failed to complete action"
	ErrMsgFailedToReleaseAction  = "failed to release action"
)
