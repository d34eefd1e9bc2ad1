package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Service defines account and read-model operations
type Service interface {
	// CreateNewUser creates the account and its starter farm. The name is
	// optional and stays null until onboarding. Calling it again for an
	// existing id only updates the name, and a blank name leaves the row as is.
	CreateNewUser(ctx context.Context, userID, name string) (*domain.User, error)

	// UpdateUserData renames an existing user
	UpdateUserData(ctx context.Context, userID, name string) (*domain.User, error)

	// GetGameState assembles user, inventory and farm for the client
	GetGameState(ctx context.Context, userID string) (*domain.GameState, error)
}

// FarmReader provides the farm portion of the game state
type FarmReader interface {
	Snapshot(ctx context.Context, userID string) (domain.FarmSnapshot, error)
}

type service struct {
	repo repository.User
	farm FarmReader
	now  func() time.Time
}

// NewService creates a new user service
func NewService(repo repository.User, farm FarmReader) Service {
	return &service{repo: repo, farm: farm, now: time.Now}
}

func (s *service) CreateNewUser(ctx context.Context, userID, name string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateNewUserCalled, "userID", userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: Missing userId", domain.ErrInvalidInput)
	}
	var clean *string
	if strings.TrimSpace(name) != "" {
		n, err := NormalizeName(name)
		if err != nil {
			return nil, err
		}
		clean = &n
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	now := s.now().UTC()
	user := &domain.User{
		ID:        userID,
		Name:      clean,
		Level:     domain.StarterLevel,
		Exp:       domain.StarterExp,
		Coin:      domain.StarterCoin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := tx.InsertUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInsertUserFailed, err)
	}

	if created {
		if err := tx.InsertPlots(ctx, StarterPlots(userID, now)); err != nil {
			return nil, fmt.Errorf(ErrMsgInsertPlotsFailed, err)
		}
	} else if clean != nil {
		if user, err = tx.UpdateUserName(ctx, userID, *clean); err != nil {
			return nil, err
		}
	} else {
		if user, err = tx.GetUserForUpdate(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	if created {
		log.Info(LogMsgUserCreated, "userID", userID, "plots", domain.StarterPlotCount)
	} else if clean != nil {
		log.Info(LogMsgUserRenamed, "userID", userID)
	}
	return user, nil
}

// StarterPlots lays out the starter grid row by row. The first
// FreePlotCount plots start unlocked.
func StarterPlots(userID string, now time.Time) []domain.FarmPlot {
	plots := make([]domain.FarmPlot, 0, domain.StarterPlotCount)
	for n := 1; n <= domain.StarterPlotCount; n++ {
		x := ((n - 1) % domain.StarterGridSize) * domain.PlotSpacing
		y := ((n - 1) / domain.StarterGridSize) * domain.PlotSpacing
		plot := domain.FarmPlot{
			ID:         uuid.NewString(),
			UserID:     userID,
			PlotNumber: n,
			PositionX:  &x,
			PositionY:  &y,
		}
		if n <= domain.FreePlotCount {
			unlockedAt := now
			plot.IsUnlocked = true
			plot.UnlockedAt = &unlockedAt
		}
		plots = append(plots, plot)
	}
	return plots
}

func (s *service) UpdateUserData(ctx context.Context, userID, name string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpdateUserDataCalled, "userID", userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: Missing userId or name", domain.ErrInvalidInput)
	}
	clean, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.UpdateUserName(ctx, userID, clean)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgUserRenamed, "userID", userID)
	return user, nil
}

func (s *service) GetGameState(ctx context.Context, userID string) (*domain.GameState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}

	state := &domain.GameState{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.repo.GetUser(gctx, userID)
		if err != nil {
			return err
		}
		state.User = user
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.GetInventory(gctx, userID)
		if err != nil {
			return fmt.Errorf(ErrMsgInventoryFailed, err)
		}
		if items == nil {
			items = []domain.InventoryItem{}
		}
		state.Inventory = items
		return nil
	})
	g.Go(func() error {
		farm, err := s.farm.Snapshot(gctx, userID)
		if err != nil {
			return err
		}
		state.Farm = farm
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}
