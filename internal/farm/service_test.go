package farm

import (
	"bytes"
	"context"
	"log/slog"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/testing/mocks"
)

const (
	testUserID = "5b0c8f8e-8f7e-4c43-9a5e-3b1f3e5a7c11"
	testPlotID = "plot-1"
	testCropID = "crop-1"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testSeed() *domain.SeedType {
	return &domain.SeedType{Code: "seed_wheat", Name: "Wheat", BasePrice: 10, SellPrice: 5, GrowthTime: 1, HarvestValue: 20, UnlockLevel: 1}
}

func setup() (*mocks.FarmRepository, *mocks.Tx, *mocks.Catalog, *service) {
	repo := new(mocks.FarmRepository)
	tx := new(mocks.Tx).ExpectRollback()
	catalog := new(mocks.Catalog)
	svc := NewService(repo, catalog).(*service)
	svc.now = func() time.Time { return fixedNow }
	return repo, tx, catalog, svc
}

func TestPlantSeed_Success(t *testing.T) {
	repo, tx, catalog, svc := setup()
	ctx := context.Background()

	catalog.On("GetSeed", ctx, "seed_wheat").Return(testSeed(), nil)
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Level: 1, Coin: 100}, nil)
	tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(&domain.FarmPlot{ID: testPlotID, IsUnlocked: true}, nil)
	tx.On("GetCropByPlot", ctx, testPlotID).Return(nil, nil)
	tx.On("DebitCoins", ctx, testUserID, 10).Return(90, nil)
	tx.On("InsertCrop", ctx, mock.MatchedBy(func(c *domain.Crop) bool {
		return c.PlotID == testPlotID && c.SeedCode == "seed_wheat" &&
			c.Status == domain.CropStatusGrowing &&
			c.PlantedAt.Equal(fixedNow) && c.ReadyAt.Equal(fixedNow.Add(time.Hour)) &&
			c.ID != ""
	})).Return(nil)
	tx.On("GetInventoryItemForUpdate", ctx, testUserID, domain.ItemTypeSeed, "seed_wheat").
		Return(&domain.InventoryItem{ID: "inv-1", Quantity: 3}, nil)
	tx.On("SetInventoryQuantity", ctx, "inv-1", 2).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	result, err := svc.PlantSeed(ctx, testUserID, testPlotID, "seed_wheat")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 90, result.User.Coin)
	assert.Equal(t, testPlotID, result.Crop.PlotID)
	assert.Equal(t, domain.CropStatusGrowing, result.Crop.Status)
	assert.Equal(t, fixedNow.Add(time.Hour), result.Crop.ReadyAt)
	tx.AssertExpectations(t)
}

func TestHarvestCrop_NotReadyLogsEntryOnly(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	repo, tx, _, svc := setup()
	ctx := context.Background()

	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Level: 1, Coin: 100}, nil)
	tx.On("GetCropForUpdate", ctx, testUserID, testCropID).Return(&domain.Crop{
		ID: testCropID, SeedCode: "seed_wheat", Status: domain.CropStatusGrowing,
		PlantedAt: fixedNow, ReadyAt: fixedNow.Add(time.Hour),
	}, nil)

	_, err := svc.HarvestCrop(ctx, testUserID, testCropID)

	require.ErrorIs(t, err, domain.ErrNotReady)
	assert.Contains(t, logs.String(), LogMsgHarvestCropCalled)
	assert.NotContains(t, logs.String(), LogMsgCropHarvested)
}

func TestPlantSeed_NoSeedStock(t *testing.T) {
	repo, tx, catalog, svc := setup()
	ctx := context.Background()

	catalog.On("GetSeed", ctx, "seed_wheat").Return(testSeed(), nil)
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Coin: 10}, nil)
	tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(&domain.FarmPlot{ID: testPlotID, IsUnlocked: true}, nil)
	tx.On("GetCropByPlot", ctx, testPlotID).Return(nil, nil)
	tx.On("DebitCoins", ctx, testUserID, 10).Return(0, nil)
	tx.On("InsertCrop", ctx, mock.Anything).Return(nil)
	tx.On("GetInventoryItemForUpdate", ctx, testUserID, domain.ItemTypeSeed, "seed_wheat").Return(nil, nil)
	tx.On("Commit", ctx).Return(nil)

	result, err := svc.PlantSeed(ctx, testUserID, testPlotID, "seed_wheat")

	require.NoError(t, err)
	assert.Equal(t, 0, result.User.Coin)
	tx.AssertNotCalled(t, "SetInventoryQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlantSeed_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		coin     int
		plot     *domain.FarmPlot
		plotErr  error
		existing *domain.Crop
		wantErr  error
	}{
		{name: "plot not found", coin: 100, plotErr: domain.ErrPlotNotFound, wantErr: domain.ErrPlotNotFound},
		{name: "plot locked", coin: 100, plot: &domain.FarmPlot{ID: testPlotID}, wantErr: domain.ErrPlotLocked},
		{
			name:     "plot occupied",
			coin:     100,
			plot:     &domain.FarmPlot{ID: testPlotID, IsUnlocked: true},
			existing: &domain.Crop{ID: "other"},
			wantErr:  domain.ErrCropAlreadyPlanted,
		},
		{name: "insufficient funds", coin: 9, plot: &domain.FarmPlot{ID: testPlotID, IsUnlocked: true}, wantErr: domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, tx, catalog, svc := setup()
			ctx := context.Background()

			catalog.On("GetSeed", ctx, "seed_wheat").Return(testSeed(), nil)
			repo.On("BeginTx", ctx).Return(tx, nil)
			tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Coin: tt.coin}, nil)
			if tt.plotErr != nil {
				tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(nil, tt.plotErr)
			} else {
				tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(tt.plot, nil)
			}
			if tt.existing != nil {
				tx.On("GetCropByPlot", ctx, testPlotID).Return(tt.existing, nil)
			} else {
				tx.On("GetCropByPlot", ctx, testPlotID).Return(nil, nil).Maybe()
			}

			_, err := svc.PlantSeed(ctx, testUserID, testPlotID, "seed_wheat")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			tx.AssertNotCalled(t, "DebitCoins", mock.Anything, mock.Anything, mock.Anything)
			tx.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestPlantSeed_UnknownSeed(t *testing.T) {
	repo, _, catalog, svc := setup()
	ctx := context.Background()
	catalog.On("GetSeed", ctx, "seed_ghost").Return(nil, domain.ErrSeedNotFound)

	_, err := svc.PlantSeed(ctx, testUserID, testPlotID, "seed_ghost")

	assert.ErrorIs(t, err, domain.ErrSeedNotFound)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestPlantSeed_MissingInput(t *testing.T) {
	_, _, _, svc := setup()
	_, err := svc.PlantSeed(context.Background(), testUserID, "", "seed_wheat")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHarvestCrop_Success(t *testing.T) {
	repo, tx, catalog, svc := setup()
	ctx := context.Background()

	// Stored status still says growing; the clock says ready.
	crop := &domain.Crop{
		ID: testCropID, SeedCode: "seed_wheat", Status: domain.CropStatusGrowing,
		PlantedAt: fixedNow.Add(-2 * time.Hour), ReadyAt: fixedNow.Add(-time.Hour),
	}

	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Level: 1, Exp: 195, Coin: 50}, nil)
	tx.On("GetCropForUpdate", ctx, testUserID, testCropID).Return(crop, nil)
	catalog.On("GetSeed", ctx, "seed_wheat").Return(testSeed(), nil)
	tx.On("CreditCoins", ctx, testUserID, 20).Return(70, nil)
	tx.On("SetProgress", ctx, testUserID, 199, 1).Return(nil)
	tx.On("DeleteCrop", ctx, testCropID).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	result, err := svc.HarvestCrop(ctx, testUserID, testCropID)

	require.NoError(t, err)
	assert.Equal(t, domain.HarvestedCrop{SeedCode: "seed_wheat", SeedName: "Wheat", HarvestValue: 20, Exp: 4}, result.Harvested)
	assert.Equal(t, domain.HarvestUser{Coin: 70, Exp: 199, Level: 1, LeveledUp: false}, result.User)
	tx.AssertExpectations(t)
}

func TestHarvestCrop_LevelUp(t *testing.T) {
	repo, tx, catalog, svc := setup()
	ctx := context.Background()

	seed := testSeed()
	seed.HarvestValue = 500 // 100 exp

	crop := &domain.Crop{ID: testCropID, SeedCode: "seed_wheat", Status: domain.CropStatusReady, ReadyAt: fixedNow}
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Level: 1, Exp: 150}, nil)
	tx.On("GetCropForUpdate", ctx, testUserID, testCropID).Return(crop, nil)
	catalog.On("GetSeed", ctx, "seed_wheat").Return(seed, nil)
	tx.On("CreditCoins", ctx, testUserID, 500).Return(500, nil)
	tx.On("SetProgress", ctx, testUserID, 250, 2).Return(nil)
	tx.On("DeleteCrop", ctx, testCropID).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	result, err := svc.HarvestCrop(ctx, testUserID, testCropID)

	require.NoError(t, err)
	assert.True(t, result.User.LeveledUp)
	assert.Equal(t, 2, result.User.Level)
	assert.Equal(t, 250, result.User.Exp)
}

func TestHarvestCrop_NotReady(t *testing.T) {
	repo, tx, _, svc := setup()
	ctx := context.Background()

	crop := &domain.Crop{
		ID: testCropID, SeedCode: "seed_wheat", Status: domain.CropStatusGrowing,
		PlantedAt: fixedNow.Add(-time.Minute), ReadyAt: fixedNow.Add(time.Minute),
	}
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Level: 1}, nil)
	tx.On("GetCropForUpdate", ctx, testUserID, testCropID).Return(crop, nil)

	_, err := svc.HarvestCrop(ctx, testUserID, testCropID)

	assert.ErrorIs(t, err, domain.ErrNotReady)
	assert.Equal(t, domain.ErrMsgCropNotReady, domain.PublicMessage(err))
	tx.AssertNotCalled(t, "CreditCoins", mock.Anything, mock.Anything, mock.Anything)
}

func TestHarvestCrop_Withered(t *testing.T) {
	repo, tx, _, svc := setup()
	ctx := context.Background()

	crop := &domain.Crop{ID: testCropID, Status: domain.CropStatusWithered, ReadyAt: fixedNow.Add(-time.Hour)}
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID}, nil)
	tx.On("GetCropForUpdate", ctx, testUserID, testCropID).Return(crop, nil)

	_, err := svc.HarvestCrop(ctx, testUserID, testCropID)
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestUnlockPlot(t *testing.T) {
	t.Run("charges the schedule price", func(t *testing.T) {
		repo, tx, _, svc := setup()
		ctx := context.Background()
		unlockedAt := fixedNow

		repo.On("BeginTx", ctx).Return(tx, nil)
		tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Coin: 250}, nil)
		tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(&domain.FarmPlot{ID: testPlotID, PlotNumber: 5}, nil)
		tx.On("DebitCoins", ctx, testUserID, 200).Return(50, nil)
		tx.On("UnlockPlot", ctx, testPlotID, fixedNow).
			Return(&domain.FarmPlot{ID: testPlotID, PlotNumber: 5, IsUnlocked: true, UnlockedAt: &unlockedAt}, nil)
		tx.On("Commit", ctx).Return(nil)

		result, err := svc.UnlockPlot(ctx, testUserID, testPlotID)

		require.NoError(t, err)
		assert.Equal(t, 200, result.UnlockPrice)
		assert.Equal(t, 50, result.User.Coin)
		assert.True(t, result.Plot.IsUnlocked)
		assert.Equal(t, 5, result.Plot.PlotNumber)
	})

	t.Run("already unlocked", func(t *testing.T) {
		repo, tx, _, svc := setup()
		ctx := context.Background()

		repo.On("BeginTx", ctx).Return(tx, nil)
		tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Coin: 250}, nil)
		tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(&domain.FarmPlot{ID: testPlotID, PlotNumber: 1, IsUnlocked: true}, nil)

		_, err := svc.UnlockPlot(ctx, testUserID, testPlotID)
		assert.ErrorIs(t, err, domain.ErrPlotAlreadyUnlocked)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		repo, tx, _, svc := setup()
		ctx := context.Background()

		repo.On("BeginTx", ctx).Return(tx, nil)
		tx.On("GetUserForUpdate", ctx, testUserID).Return(&domain.User{ID: testUserID, Coin: 99}, nil)
		tx.On("GetPlotForUpdate", ctx, testUserID, testPlotID).Return(&domain.FarmPlot{ID: testPlotID, PlotNumber: 4}, nil)

		_, err := svc.UnlockPlot(ctx, testUserID, testPlotID)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		tx.AssertNotCalled(t, "UnlockPlot", mock.Anything, mock.Anything, mock.Anything)
	})
}

func farmRows() []domain.PlotWithCrop {
	icon := "wheat.png"
	seed := &domain.SeedType{Code: "seed_wheat", Name: "Wheat", Icon: &icon, GrowthTime: 1}
	return []domain.PlotWithCrop{
		{
			Plot: domain.FarmPlot{ID: "p1", PlotNumber: 1, IsUnlocked: true},
			Crop: &domain.Crop{
				ID: "c-due", SeedCode: "seed_wheat", Status: domain.CropStatusGrowing,
				PlantedAt: fixedNow.Add(-2 * time.Hour), ReadyAt: fixedNow.Add(-time.Hour),
			},
			Seed: seed,
		},
		{
			Plot: domain.FarmPlot{ID: "p2", PlotNumber: 2, IsUnlocked: true},
			Crop: &domain.Crop{
				ID: "c-growing", SeedCode: "seed_wheat", Status: domain.CropStatusGrowing,
				PlantedAt: fixedNow.Add(-30 * time.Minute), ReadyAt: fixedNow.Add(30 * time.Minute),
			},
			Seed: seed,
		},
		{Plot: domain.FarmPlot{ID: "p3", PlotNumber: 3, IsUnlocked: true}},
		{Plot: domain.FarmPlot{ID: "p4", PlotNumber: 4}},
	}
}

func TestGetFarmState(t *testing.T) {
	repo, _, _, svc := setup()
	ctx := context.Background()

	repo.On("GetFarm", ctx, testUserID).Return(farmRows(), nil)
	repo.On("MarkCropsReady", ctx, []string{"c-due"}).Return(int64(1), nil)

	state, err := svc.GetFarmState(ctx, testUserID)

	require.NoError(t, err)
	assert.Equal(t, domain.FarmStats{TotalPlots: 4, UnlockedPlots: 3, ActiveCrops: 2, ReadyCrops: 1}, state.Stats)
	require.Len(t, state.Plots, 4)

	due := state.Plots[0].Crop
	require.NotNil(t, due)
	assert.Equal(t, domain.CropStatusReady, due.Status)
	assert.Equal(t, 100, due.Progress)
	assert.Equal(t, 0, due.RemainingTime)
	assert.Equal(t, "Wheat", due.SeedName)
	assert.Equal(t, "wheat.png", *due.SeedIcon)

	growing := state.Plots[1].Crop
	require.NotNil(t, growing)
	assert.Equal(t, domain.CropStatusGrowing, growing.Status)
	assert.Equal(t, 50, growing.Progress)
	assert.Equal(t, 1800, growing.RemainingTime)
	assert.Equal(t, domain.StageHalfway, growing.Stage)

	assert.Nil(t, state.Plots[2].Crop)
	repo.AssertExpectations(t)
}

func TestGetFarmState_PromotionFailureIsNotFatal(t *testing.T) {
	repo, _, _, svc := setup()
	ctx := context.Background()

	repo.On("GetFarm", ctx, testUserID).Return(farmRows(), nil)
	repo.On("MarkCropsReady", ctx, []string{"c-due"}).Return(int64(0), errors.New("deadlock"))

	state, err := svc.GetFarmState(ctx, testUserID)

	require.NoError(t, err)
	assert.Equal(t, domain.CropStatusReady, state.Plots[0].Crop.Status)
}

func TestSnapshot(t *testing.T) {
	repo, _, _, svc := setup()
	ctx := context.Background()

	repo.On("GetFarm", ctx, testUserID).Return(farmRows(), nil)
	repo.On("MarkCropsReady", ctx, []string{"c-due"}).Return(int64(1), nil)

	snap, err := svc.Snapshot(ctx, testUserID)

	require.NoError(t, err)
	require.Len(t, snap.Plots, 4)
	require.NotNil(t, snap.Plots[0].Crop)
	assert.Equal(t, domain.CropStatusReady, snap.Plots[0].Crop.Status)
	assert.Equal(t, "Wheat", snap.Plots[0].Crop.SeedType.Name)
	assert.Nil(t, snap.Plots[3].Crop)
	assert.False(t, snap.Plots[3].IsUnlocked)
}

func TestGetFarmState_NoPromotionNeeded(t *testing.T) {
	repo, _, _, svc := setup()
	ctx := context.Background()

	repo.On("GetFarm", ctx, testUserID).Return([]domain.PlotWithCrop{
		{Plot: domain.FarmPlot{ID: "p1", PlotNumber: 1, IsUnlocked: true}},
	}, nil)

	_, err := svc.GetFarmState(ctx, testUserID)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "MarkCropsReady", mock.Anything, mock.Anything)
}
