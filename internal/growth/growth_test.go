package growth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

func TestStageOf(t *testing.T) {
	planted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ready := planted.Add(3 * time.Hour)

	tests := []struct {
		name          string
		now           time.Time
		wantStage     domain.GrowthStage
		wantPct       int
		wantRemaining int
	}{
		{"at planting", planted, domain.StageSeedling, 0, 10800},
		{"before planting", planted.Add(-time.Hour), domain.StageSeedling, 0, 14400},
		{"just under a third", planted.Add(time.Hour - time.Second), domain.StageSeedling, 33, 7201},
		{"exactly a third", planted.Add(time.Hour), domain.StageHalfway, 33, 7200},
		{"just under two thirds", planted.Add(2*time.Hour - time.Second), domain.StageHalfway, 67, 3601},
		{"exactly two thirds", planted.Add(2 * time.Hour), domain.StagePlant, 67, 3600},
		{"at ready", ready, domain.StagePlant, 100, 0},
		{"long after ready", ready.Add(24 * time.Hour), domain.StagePlant, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StageOf(planted, ready, tt.now)
			assert.Equal(t, tt.wantStage, got.Stage)
			assert.Equal(t, tt.wantPct, got.ProgressPct)
			assert.Equal(t, tt.wantRemaining, got.RemainingSeconds)
		})
	}
}

func TestStageOf_ZeroWindow(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, now := range []time.Time{at.Add(-time.Minute), at, at.Add(time.Minute)} {
		got := StageOf(at, at, now)
		assert.Equal(t, domain.StagePlant, got.Stage)
		assert.Equal(t, 100, got.ProgressPct)
		assert.Equal(t, 0, got.RemainingSeconds)
	}

	got := StageOf(at, at.Add(-time.Hour), at)
	assert.Equal(t, domain.StagePlant, got.Stage, "inverted window is treated as grown")
}

func TestStageOf_ProgressMonotonic(t *testing.T) {
	planted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ready := planted.Add(7 * time.Minute)

	prev := -1
	for now := planted.Add(-time.Minute); now.Before(ready.Add(2 * time.Minute)); now = now.Add(13 * time.Second) {
		got := StageOf(planted, ready, now)
		assert.GreaterOrEqual(t, got.ProgressPct, prev)
		assert.GreaterOrEqual(t, got.ProgressPct, 0)
		assert.LessOrEqual(t, got.ProgressPct, 100)
		prev = got.ProgressPct
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		stored  domain.CropStatus
		readyAt time.Time
		want    domain.CropStatus
	}{
		{"growing before ready", domain.CropStatusGrowing, now.Add(time.Second), domain.CropStatusGrowing},
		{"growing at ready", domain.CropStatusGrowing, now, domain.CropStatusReady},
		{"growing after ready", domain.CropStatusGrowing, now.Add(-time.Hour), domain.CropStatusReady},
		{"stored ready stays ready", domain.CropStatusReady, now.Add(time.Hour), domain.CropStatusReady},
		{"withered stays withered", domain.CropStatusWithered, now.Add(-time.Hour), domain.CropStatusWithered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crop := &domain.Crop{Status: tt.stored, ReadyAt: tt.readyAt}
			assert.Equal(t, tt.want, DeriveStatus(crop, now))
		})
	}
}

func TestNeedsPromotion(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, NeedsPromotion(&domain.Crop{Status: domain.CropStatusGrowing, ReadyAt: now}, now))
	assert.False(t, NeedsPromotion(&domain.Crop{Status: domain.CropStatusGrowing, ReadyAt: now.Add(time.Second)}, now))
	assert.False(t, NeedsPromotion(&domain.Crop{Status: domain.CropStatusReady, ReadyAt: now.Add(-time.Hour)}, now))
}

func TestVisualStageLeadsReadiness(t *testing.T) {
	planted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	crop := &domain.Crop{Status: domain.CropStatusGrowing, PlantedAt: planted, ReadyAt: planted.Add(3 * time.Hour)}
	now := planted.Add(150 * time.Minute)

	assert.Equal(t, domain.StagePlant, StageOf(crop.PlantedAt, crop.ReadyAt, now).Stage)
	assert.False(t, IsHarvestable(crop, now))
}

func TestReadyAt(t *testing.T) {
	planted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, planted.Add(4*time.Hour), ReadyAt(planted, 4))
	assert.Equal(t, planted.Add(30*time.Minute), ReadyAt(planted, 0.5))
	assert.Equal(t, planted, ReadyAt(planted, 0))
}
