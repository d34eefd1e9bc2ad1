package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelFarm_Go/internal/concurrency"
	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
	"github.com/osse101/PixelFarm_Go/internal/testing/mocks"
)

const testUserID = "5b0c8f8e-8f7e-4c43-9a5e-3b1f3e5a7c11"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	farm      *mockFarm
	economy   *mockEconomy
	state     *mockState
	processed *mocks.ProcessedActions
	svc       *service
}

func setup() *fixture {
	f := &fixture{
		farm:      new(mockFarm),
		economy:   new(mockEconomy),
		state:     new(mockState),
		processed: new(mocks.ProcessedActions),
	}
	f.svc = NewService(f.farm, f.economy, f.state, f.processed, concurrency.NewLockManager()).(*service)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func action(t *testing.T, id string, typ domain.ActionType, ts int64, payload any) domain.GameAction {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return domain.GameAction{ID: id, Type: typ, Payload: raw, Timestamp: ts}
}

func TestAutosave_AppliesInTimestampOrder(t *testing.T) {
	f := setup()
	ctx := context.Background()

	var order []string
	record := func(id string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, id) }
	}

	plant := action(t, "plant-p1-2", domain.ActionPlantSeed, 2, domain.PlantSeedPayload{PlotID: "p1", SeedCode: "seed_wheat"})
	buy := action(t, "buy-seed_wheat-1", domain.ActionBuyItem, 1, domain.TradePayload{ItemCode: "seed_wheat", ItemType: domain.ItemTypeSeed, Quantity: 2})
	unlock := action(t, "unlock-p4-3", domain.ActionUnlockPlot, 3, domain.UnlockPlotPayload{PlotID: "p4"})

	f.processed.On("ClaimAction", ctx, testUserID, mock.Anything).Return(true, nil)
	f.processed.On("CompleteAction", ctx, testUserID, mock.Anything, repository.ActionApplied, "").Return(nil)
	f.economy.On("PurchaseItem", ctx, testUserID, domain.ItemTypeSeed, "seed_wheat", 2).
		Return(&domain.PurchaseResult{Success: true}, nil).Run(record(buy.ID))
	f.farm.On("PlantSeed", ctx, testUserID, "p1", "seed_wheat").
		Return(&domain.PlantResult{Success: true}, nil).Run(record(plant.ID))
	f.farm.On("UnlockPlot", ctx, testUserID, "p4").
		Return(&domain.UnlockResult{Success: true}, nil).Run(record(unlock.ID))
	state := &domain.GameState{User: &domain.User{ID: testUserID}}
	f.state.On("GetGameState", ctx, testUserID).Return(state, nil)

	resp, err := f.svc.Autosave(ctx, testUserID, []domain.GameAction{plant, unlock, buy})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Same(t, state, resp.State)
	assert.Equal(t, fixedNow.UnixMilli(), resp.SyncedAt)
	assert.Empty(t, resp.ConflictResolutions)
	assert.Equal(t, []string{buy.ID, plant.ID, unlock.ID}, order)
}

func TestAutosave_GameErrorsBecomeConflicts(t *testing.T) {
	f := setup()
	ctx := context.Background()

	harvest := action(t, "harvest-c1-1", domain.ActionHarvestCrop, 1, domain.HarvestCropPayload{CropID: "c1"})
	sell := action(t, "sell-seed_wheat-2", domain.ActionSellItem, 2, domain.TradePayload{ItemCode: "seed_wheat", ItemType: domain.ItemTypeSeed})

	f.processed.On("ClaimAction", ctx, testUserID, mock.Anything).Return(true, nil)
	f.farm.On("HarvestCrop", ctx, testUserID, "c1").Return(nil, domain.ErrNotReady)
	f.processed.On("CompleteAction", ctx, testUserID, harvest.ID, repository.ActionRejected, domain.ErrMsgCropNotReady).Return(nil)
	f.economy.On("SellItem", ctx, testUserID, domain.ItemTypeSeed, "seed_wheat", 1).Return(&domain.SellResult{Success: true}, nil)
	f.processed.On("CompleteAction", ctx, testUserID, sell.ID, repository.ActionApplied, "").Return(nil)
	f.state.On("GetGameState", ctx, testUserID).Return(&domain.GameState{}, nil)

	resp, err := f.svc.Autosave(ctx, testUserID, []domain.GameAction{sell, harvest})

	require.NoError(t, err)
	require.Len(t, resp.ConflictResolutions, 1)
	c := resp.ConflictResolutions[0]
	assert.Equal(t, harvest.ID, c.ActionID)
	assert.Equal(t, "Crop is not ready to harvest", c.Reason)
	f.processed.AssertExpectations(t)
}

func TestAutosave_SkipsProcessedAndDuplicateActions(t *testing.T) {
	f := setup()
	ctx := context.Background()

	plant := action(t, "plant-p1-1", domain.ActionPlantSeed, 1, domain.PlantSeedPayload{PlotID: "p1", SeedCode: "seed_wheat"})

	f.processed.On("ClaimAction", ctx, testUserID, plant.ID).Return(false, nil).Once()
	f.state.On("GetGameState", ctx, testUserID).Return(&domain.GameState{}, nil)

	resp, err := f.svc.Autosave(ctx, testUserID, []domain.GameAction{plant, plant})

	require.NoError(t, err)
	assert.Empty(t, resp.ConflictResolutions)
	f.farm.AssertNotCalled(t, "PlantSeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.processed.AssertNumberOfCalls(t, "ClaimAction", 1)
}

func TestAutosave_StoreErrorAbortsAndReleases(t *testing.T) {
	f := setup()
	ctx := context.Background()

	first := action(t, "plant-p1-1", domain.ActionPlantSeed, 1, domain.PlantSeedPayload{PlotID: "p1", SeedCode: "seed_wheat"})
	second := action(t, "unlock-p4-2", domain.ActionUnlockPlot, 2, domain.UnlockPlotPayload{PlotID: "p4"})

	f.processed.On("ClaimAction", ctx, testUserID, first.ID).Return(true, nil)
	f.farm.On("PlantSeed", ctx, testUserID, "p1", "seed_wheat").Return(nil, errors.New("connection refused"))
	f.processed.On("ReleaseAction", ctx, testUserID, first.ID).Return(nil)

	_, err := f.svc.Autosave(ctx, testUserID, []domain.GameAction{first, second})

	require.Error(t, err)
	assert.False(t, domain.IsGameError(err))
	f.farm.AssertNotCalled(t, "UnlockPlot", mock.Anything, mock.Anything, mock.Anything)
	f.processed.AssertNotCalled(t, "CompleteAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.processed.AssertExpectations(t)
	f.state.AssertNotCalled(t, "GetGameState", mock.Anything, mock.Anything)
}

func TestAutosave_MalformedActions(t *testing.T) {
	f := setup()
	ctx := context.Background()

	unknown := domain.GameAction{ID: "feed-1", Type: "FEED_ANIMAL", Payload: json.RawMessage(`{}`), Timestamp: 1}
	broken := domain.GameAction{ID: "plant-x-2", Type: domain.ActionPlantSeed, Payload: json.RawMessage(`"nope"`), Timestamp: 2}
	noID := domain.GameAction{Type: domain.ActionUnlockPlot, Payload: json.RawMessage(`{}`), Timestamp: 3}

	f.processed.On("ClaimAction", ctx, testUserID, mock.Anything).Return(true, nil)
	f.processed.On("CompleteAction", ctx, testUserID, mock.Anything, repository.ActionRejected, domain.ErrMsgInvalidInput).Return(nil)
	f.state.On("GetGameState", ctx, testUserID).Return(&domain.GameState{}, nil)

	resp, err := f.svc.Autosave(ctx, testUserID, []domain.GameAction{unknown, broken, noID})

	require.NoError(t, err)
	assert.Len(t, resp.ConflictResolutions, 3)
	f.processed.AssertNumberOfCalls(t, "ClaimAction", 2)
}

func TestAutosave_Validation(t *testing.T) {
	f := setup()
	ctx := context.Background()

	_, err := f.svc.Autosave(ctx, "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Autosave(ctx, testUserID, make([]domain.GameAction, MaxBatchSize+1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAutosave_EmptyBatchReturnsState(t *testing.T) {
	f := setup()
	ctx := context.Background()

	f.state.On("GetGameState", ctx, testUserID).Return(&domain.GameState{User: &domain.User{ID: testUserID}}, nil)

	resp, err := f.svc.Autosave(ctx, testUserID, []domain.GameAction{})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.ConflictResolutions)
}
