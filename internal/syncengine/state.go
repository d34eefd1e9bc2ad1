package syncengine

import (
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Phase tags the variant of State
type Phase string

const (
	PhasePlaying      Phase = "playing"
	PhaseAccumulating Phase = "accumulating"
	PhaseSyncing      Phase = "syncing"
	PhaseError        Phase = "error"
)

// State is the complete client-side sync state. Values are treated as
// immutable: the reducer never mutates a Queue it was handed.
type State struct {
	Phase Phase

	GameState *domain.GameState
	UserID    string
	Queue     []domain.GameAction

	// LastSyncedAt is unix milliseconds of the last successful autosave
	LastSyncedAt int64
	IsSyncing    bool
	Error        string

	// AccumulatingSince is when the current window opened
	AccumulatingSince time.Time

	// InFlight is the length of the queue prefix sent by the running autosave
	InFlight int

	// TimerGen identifies the live window timer; stale firings are ignored
	TimerGen uint64

	// Conflicts holds the rejections reported by the last successful autosave
	Conflicts []domain.ConflictResolution
}

// Initial returns the state a session starts in
func Initial(userID string, gs *domain.GameState, now time.Time) State {
	return State{
		Phase:        PhasePlaying,
		GameState:    gs,
		UserID:       userID,
		LastSyncedAt: now.UnixMilli(),
	}
}

// Event is anything the reducer reacts to
type Event interface {
	isEvent()
}

// Initialize supplies a server-fetched snapshot
type Initialize struct {
	State *domain.GameState
}

// PlantSeed queues a PLANT_SEED action
type PlantSeed struct {
	PlotID   string
	SeedCode string
	At       time.Time
}

// HarvestCrop queues a HARVEST_CROP action
type HarvestCrop struct {
	CropID string
	At     time.Time
}

// BuyItem queues a BUY_ITEM action
type BuyItem struct {
	ItemCode string
	ItemType domain.ItemType
	Quantity int
	At       time.Time
}

// SellItem queues a SELL_ITEM action
type SellItem struct {
	ItemCode string
	ItemType domain.ItemType
	Quantity int
	At       time.Time
}

// UnlockPlot queues an UNLOCK_PLOT action
type UnlockPlot struct {
	PlotID string
	At     time.Time
}

// TimerFired closes the accumulation window identified by Gen
type TimerFired struct {
	Gen uint64
}

// AutosaveSucceeded carries the server-reconciled result
type AutosaveSucceeded struct {
	Response domain.AutosaveResponse
	At       time.Time
}

// AutosaveFailed carries the failure message
type AutosaveFailed struct {
	Err string
}

func (Initialize) isEvent()        {}
func (PlantSeed) isEvent()         {}
func (HarvestCrop) isEvent()       {}
func (BuyItem) isEvent()           {}
func (SellItem) isEvent()          {}
func (UnlockPlot) isEvent()        {}
func (TimerFired) isEvent()        {}
func (AutosaveSucceeded) isEvent() {}
func (AutosaveFailed) isEvent()    {}

// Effect is work the reducer asks the runner to perform
type Effect interface {
	isEffect()
}

// StartTimer asks for TimerFired{Gen} after Delay
type StartTimer struct {
	Delay time.Duration
	Gen   uint64
}

// RunAutosave asks for the batch to be submitted
type RunAutosave struct {
	UserID  string
	Actions []domain.GameAction
}

func (StartTimer) isEffect()  {}
func (RunAutosave) isEffect() {}
