package syncengine

import (
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Reduce computes the next state for ev. It performs no I/O; timers and
// autosave calls are returned as effects for the caller to run.
func Reduce(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Initialize:
		if s.Phase == PhasePlaying || s.Phase == PhaseAccumulating {
			s.GameState = e.State
		}
		return s, nil

	case PlantSeed:
		return enqueue(s, e.At, domain.ActionPlantSeed, kindPlant, e.PlotID,
			domain.PlantSeedPayload{PlotID: e.PlotID, SeedCode: e.SeedCode})
	case HarvestCrop:
		return enqueue(s, e.At, domain.ActionHarvestCrop, kindHarvest, e.CropID,
			domain.HarvestCropPayload{CropID: e.CropID})
	case BuyItem:
		return enqueue(s, e.At, domain.ActionBuyItem, kindBuy, e.ItemCode,
			domain.TradePayload{ItemCode: e.ItemCode, ItemType: e.ItemType, Quantity: e.Quantity})
	case SellItem:
		return enqueue(s, e.At, domain.ActionSellItem, kindSell, e.ItemCode,
			domain.TradePayload{ItemCode: e.ItemCode, ItemType: e.ItemType, Quantity: e.Quantity})
	case UnlockPlot:
		return enqueue(s, e.At, domain.ActionUnlockPlot, kindUnlock, e.PlotID,
			domain.UnlockPlotPayload{PlotID: e.PlotID})

	case TimerFired:
		if s.Phase != PhaseAccumulating || e.Gen != s.TimerGen {
			return s, nil
		}
		if len(s.Queue) == 0 {
			s.Phase = PhasePlaying
			s.AccumulatingSince = time.Time{}
			return s, nil
		}
		s.Phase = PhaseSyncing
		s.IsSyncing = true
		s.InFlight = len(s.Queue)
		return s, []Effect{RunAutosave{UserID: s.UserID, Actions: cloneQueue(s.Queue)}}

	case AutosaveSucceeded:
		if s.Phase != PhaseSyncing {
			return s, nil
		}
		s.GameState = e.Response.State
		s.LastSyncedAt = e.Response.SyncedAt
		s.Conflicts = e.Response.ConflictResolutions
		s.IsSyncing = false
		s.Error = ""
		s.Queue = cloneQueue(s.Queue[s.InFlight:])
		s.InFlight = 0
		if len(s.Queue) > 0 {
			// Actions queued during the call open a fresh window
			return openWindow(s, e.At)
		}
		s.Phase = PhasePlaying
		s.AccumulatingSince = time.Time{}
		return s, nil

	case AutosaveFailed:
		if s.Phase != PhaseSyncing {
			return s, nil
		}
		s.Phase = PhaseError
		s.IsSyncing = false
		s.InFlight = 0
		s.Error = e.Err
		s.AccumulatingSince = time.Time{}
		return s, nil
	}

	return s, nil
}

func enqueue(s State, at time.Time, typ domain.ActionType, kind, key string, payload any) (State, []Effect) {
	s.Queue = appendAction(s.Queue, newAction(s.Queue, at, typ, kind, key, payload))

	switch s.Phase {
	case PhasePlaying:
		return openWindow(s, at)
	case PhaseError:
		s.Error = ""
		return openWindow(s, at)
	}
	// accumulating keeps its window; syncing holds the action for the next one
	return s, nil
}

func openWindow(s State, at time.Time) (State, []Effect) {
	s.Phase = PhaseAccumulating
	s.AccumulatingSince = at
	s.TimerGen++
	return s, []Effect{StartTimer{Delay: AutosaveInterval, Gen: s.TimerGen}}
}
