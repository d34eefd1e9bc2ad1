package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Kinds
	ErrMsgValidation = "invalid input"
	ErrMsgNotFound   = "not found"
	ErrMsgConflict   = "conflict"
	ErrMsgRejected   = "action rejected"

	// User errors
	ErrMsgUserNotFound = "User not found"

	// Farm errors
	ErrMsgPlotNotFound         = "Plot not found"
	ErrMsgPlotLocked           = "Plot is locked"
	ErrMsgPlotAlreadyUnlocked  = "Plot is already unlocked"
	ErrMsgCropNotFound         = "Crop not found"
	ErrMsgCropAlreadyPlanted   = "Plot already has a crop"
	ErrMsgCropNotReady         = "Crop is not ready to harvest"
	ErrMsgSeedNotFound         = "Seed not found"
	ErrMsgAnimalNotFound       = "Animal not found"
	ErrMsgInvalidItemType      = "Invalid item type"
	ErrMsgInventoryItemMissing = "Item not found in inventory"

	// Economy errors
	ErrMsgInsufficientFunds     = "Not enough coins"
	ErrMsgInsufficientInventory = "Not enough quantity in inventory"
	ErrMsgLevelLocked           = "Level requirement not met"

	// Building errors
	ErrMsgBuildingTypeNotFound = "Building type not found"
	ErrMsgBuildingNotOwned     = "You don't own this building"
	ErrMsgBuildingAlreadyOwned = "You already own this building"
	ErrMsgBuildingAtMaxLevel   = "Building is already at max level"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Error kinds. Every game error unwraps to exactly one of these, which is
// what the HTTP layer switches on.
var (
	ErrValidation = errors.New(ErrMsgValidation)
	ErrNotFound   = errors.New(ErrMsgNotFound)
	ErrConflict   = errors.New(ErrMsgConflict)
	ErrRejected   = errors.New(ErrMsgRejected)
)

// Error is a game rule failure with a client-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidInput    = newError(ErrValidation, ErrMsgInvalidInput)
	ErrInvalidItemType = newError(ErrValidation, ErrMsgInvalidItemType)

	ErrUserNotFound          = newError(ErrNotFound, ErrMsgUserNotFound)
	ErrPlotNotFound          = newError(ErrNotFound, ErrMsgPlotNotFound)
	ErrCropNotFound          = newError(ErrNotFound, ErrMsgCropNotFound)
	ErrSeedNotFound          = newError(ErrNotFound, ErrMsgSeedNotFound)
	ErrAnimalNotFound        = newError(ErrNotFound, ErrMsgAnimalNotFound)
	ErrInventoryItemNotFound = newError(ErrNotFound, ErrMsgInventoryItemMissing)
	ErrBuildingTypeNotFound  = newError(ErrNotFound, ErrMsgBuildingTypeNotFound)
	ErrBuildingNotOwned      = newError(ErrNotFound, ErrMsgBuildingNotOwned)

	ErrCropAlreadyPlanted   = newError(ErrConflict, ErrMsgCropAlreadyPlanted)
	ErrPlotAlreadyUnlocked  = newError(ErrConflict, ErrMsgPlotAlreadyUnlocked)
	ErrBuildingAlreadyOwned = newError(ErrConflict, ErrMsgBuildingAlreadyOwned)

	ErrPlotLocked            = newError(ErrRejected, ErrMsgPlotLocked)
	ErrInsufficientFunds     = newError(ErrRejected, ErrMsgInsufficientFunds)
	ErrInsufficientInventory = newError(ErrRejected, ErrMsgInsufficientInventory)
	ErrLevelLocked           = newError(ErrRejected, ErrMsgLevelLocked)
	ErrNotReady              = newError(ErrRejected, ErrMsgCropNotReady)
	ErrMaxLevel              = newError(ErrRejected, ErrMsgBuildingAtMaxLevel)
)

// IsGameError reports whether err carries a client-facing game rule failure
// as opposed to an infrastructure failure.
func IsGameError(err error) bool {
	var gameErr *Error
	return errors.As(err, &gameErr)
}

// PublicMessage returns the client-facing message of the first game error in
// err's chain, or "" if there is none.
func PublicMessage(err error) string {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Msg
	}
	return ""
}
