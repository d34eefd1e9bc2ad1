package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/concurrency"
	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/metrics"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Service applies batches of queued client actions
type Service interface {
	// Autosave applies actions in timestamp order, each in its own
	// transaction, and returns the resulting authoritative state. Game rule
	// failures are reported per action and do not stop the batch. A store
	// failure aborts the batch; actions applied before it stay applied and
	// are skipped when the batch is retried.
	Autosave(ctx context.Context, userID string, actions []domain.GameAction) (*domain.AutosaveResponse, error)
}

// Farm is the subset of the farm service actions replay through
type Farm interface {
	PlantSeed(ctx context.Context, userID, plotID, seedCode string) (*domain.PlantResult, error)
	HarvestCrop(ctx context.Context, userID, cropID string) (*domain.HarvestResult, error)
	UnlockPlot(ctx context.Context, userID, plotID string) (*domain.UnlockResult, error)
}

// Economy is the subset of the shop service actions replay through
type Economy interface {
	PurchaseItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.PurchaseResult, error)
	SellItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.SellResult, error)
}

// StateReader returns the authoritative game state
type StateReader interface {
	GetGameState(ctx context.Context, userID string) (*domain.GameState, error)
}

type service struct {
	farm      Farm
	economy   Economy
	state     StateReader
	processed repository.ProcessedActions
	locks     *concurrency.LockManager
	now       func() time.Time
}

// NewService creates a new autosave service
func NewService(farm Farm, economy Economy, state StateReader, processed repository.ProcessedActions, locks *concurrency.LockManager) Service {
	return &service{
		farm:      farm,
		economy:   economy,
		state:     state,
		processed: processed,
		locks:     locks,
		now:       time.Now,
	}
}

func (s *service) Autosave(ctx context.Context, userID string, actions []domain.GameAction) (resp *domain.AutosaveResponse, err error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAutosaveCalled, "userID", userID, "actions", len(actions))

	start := time.Now()
	defer func() {
		metrics.AutosaveDuration.Observe(time.Since(start).Seconds())
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailure
		}
		metrics.AutosaveBatches.WithLabelValues(result).Inc()
	}()

	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}
	if len(actions) > MaxBatchSize {
		return nil, fmt.Errorf("%w: at most %d actions per batch", domain.ErrInvalidInput, MaxBatchSize)
	}

	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire autosave lock: %w", err)
	}
	defer unlock()

	ordered := make([]domain.GameAction, len(actions))
	copy(ordered, actions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	var conflicts []domain.ConflictResolution
	seen := make(map[string]bool, len(ordered))

	for _, action := range ordered {
		if action.ID == "" {
			conflicts = append(conflicts, rejection(action, fmt.Errorf("%w: action id is required", domain.ErrInvalidInput)))
			metrics.AutosaveActions.WithLabelValues(string(repository.ActionRejected)).Inc()
			continue
		}
		if seen[action.ID] {
			metrics.AutosaveActions.WithLabelValues(outcomeDuplicate).Inc()
			continue
		}
		seen[action.ID] = true

		conflict, err := s.process(ctx, userID, action)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			conflicts = append(conflicts, *conflict)
		}
	}

	state, err := s.state.GetGameState(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgAutosaveCompleted, "userID", userID, "actions", len(actions), "conflicts", len(conflicts))
	return &domain.AutosaveResponse{
		Success:             true,
		State:               state,
		SyncedAt:            s.now().UnixMilli(),
		ConflictResolutions: conflicts,
	}, nil
}

// process claims, applies and records one action. It returns a conflict for
// game rule failures and an error only for store failures.
func (s *service) process(ctx context.Context, userID string, action domain.GameAction) (*domain.ConflictResolution, error) {
	log := logger.FromContext(ctx)

	claimed, err := s.processed.ClaimAction(ctx, userID, action.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim action %s: %w", action.ID, err)
	}
	if !claimed {
		log.Debug(LogMsgActionAlreadyProcessed, "actionID", action.ID)
		metrics.AutosaveActions.WithLabelValues(outcomeDuplicate).Inc()
		return nil, nil
	}

	applyErr := s.apply(ctx, userID, action)
	if applyErr != nil && !domain.IsGameError(applyErr) {
		if err := s.processed.ReleaseAction(ctx, userID, action.ID); err != nil {
			log.Error(LogMsgReleaseClaimFailed, "actionID", action.ID, "error", err)
		}
		return nil, fmt.Errorf("failed to apply action %s: %w", action.ID, applyErr)
	}

	outcome, reason := repository.ActionApplied, ""
	var conflict *domain.ConflictResolution
	if applyErr != nil {
		outcome, reason = repository.ActionRejected, domain.PublicMessage(applyErr)
		c := rejection(action, applyErr)
		conflict = &c
		log.Info(LogMsgActionRejected, "actionID", action.ID, "type", action.Type, "reason", reason)
	}

	if err := s.processed.CompleteAction(ctx, userID, action.ID, outcome, reason); err != nil {
		// The claim stays pending, which still blocks a replay.
		log.Warn(LogMsgRecordOutcomeFailed, "actionID", action.ID, "error", err)
	}
	metrics.AutosaveActions.WithLabelValues(string(outcome)).Inc()
	return conflict, nil
}

func rejection(action domain.GameAction, err error) domain.ConflictResolution {
	return domain.ConflictResolution{
		ActionID:    action.ID,
		Reason:      domain.PublicMessage(err),
		ClientValue: action.Payload,
	}
}

func (s *service) apply(ctx context.Context, userID string, action domain.GameAction) error {
	switch action.Type {
	case domain.ActionPlantSeed:
		var p domain.PlantSeedPayload
		if err := decode(action, &p); err != nil {
			return err
		}
		_, err := s.farm.PlantSeed(ctx, userID, p.PlotID, p.SeedCode)
		return err

	case domain.ActionHarvestCrop:
		var p domain.HarvestCropPayload
		if err := decode(action, &p); err != nil {
			return err
		}
		_, err := s.farm.HarvestCrop(ctx, userID, p.CropID)
		return err

	case domain.ActionUnlockPlot:
		var p domain.UnlockPlotPayload
		if err := decode(action, &p); err != nil {
			return err
		}
		_, err := s.farm.UnlockPlot(ctx, userID, p.PlotID)
		return err

	case domain.ActionBuyItem:
		var p domain.TradePayload
		if err := decode(action, &p); err != nil {
			return err
		}
		_, err := s.economy.PurchaseItem(ctx, userID, p.ItemType, p.ItemCode, quantityOrOne(p.Quantity))
		return err

	case domain.ActionSellItem:
		var p domain.TradePayload
		if err := decode(action, &p); err != nil {
			return err
		}
		_, err := s.economy.SellItem(ctx, userID, p.ItemType, p.ItemCode, quantityOrOne(p.Quantity))
		return err

	default:
		return fmt.Errorf("%w: unknown action type %q", domain.ErrInvalidInput, action.Type)
	}
}

func decode(action domain.GameAction, v any) error {
	if err := json.Unmarshal(action.Payload, v); err != nil {
		return fmt.Errorf("%w: malformed %s payload", domain.ErrInvalidInput, action.Type)
	}
	return nil
}

// quantityOrOne defaults a missing trade quantity to a single unit
func quantityOrOne(q int) int {
	if q == 0 {
		return 1
	}
	return q
}
