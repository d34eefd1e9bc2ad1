package syncengine

import "time"

const (
	// AutosaveInterval is the accumulation window, anchored to entry into accumulating
	AutosaveInterval = 10 * time.Second

	// DefaultAutosaveTimeout bounds a single autosave call
	DefaultAutosaveTimeout = 15 * time.Second
)

// Action id kinds, the first segment of a queued action id
const (
	kindPlant   = "plant"
	kindHarvest = "harvest"
	kindBuy     = "buy"
	kindSell    = "sell"
	kindUnlock  = "unlock"
)

// Error messages surfaced in State.Error
const (
	ErrMsgAutosaveTimeout  = "autosave timed out after %s"
	ErrMsgAutosaveRejected = "autosave was not accepted by the server"
)

// Log messages
const (
	LogMsgTransition      = "Sync engine transition"
	LogMsgAutosaveStarted = "Autosave started"
	LogMsgAutosaveFailed  = "Autosave failed"
	LogMsgAutosaveDone    = "Autosave completed"
	LogMsgConflicts       = "Autosave reported conflicts"
)
