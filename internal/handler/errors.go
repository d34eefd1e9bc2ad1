package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"
)

// Operation names used in logs
const (
	OpCreateNewUser    = "Create new user"
	OpUpdateUserData   = "Update user data"
	OpGetGameState     = "Get game state"
	OpPlantSeed        = "Plant seed"
	OpHarvestCrop      = "Harvest crop"
	OpUnlockPlot       = "Unlock plot"
	OpGetFarmState     = "Get farm state"
	OpPurchaseItem     = "Purchase item"
	OpSellItem         = "Sell item"
	OpPurchaseBuilding = "Purchase building"
	OpUpgradeBuilding  = "Upgrade building"
	OpGetBuildings     = "Get user buildings"
	OpGetAnimals       = "Get user animals"
	OpGetCatalog       = "Get catalog"
	OpAutosave         = "Autosave"
)
