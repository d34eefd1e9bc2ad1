package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// BuildingRepository implements the building repository for PostgreSQL
type BuildingRepository struct {
	db *pgxpool.Pool
}

// NewBuildingRepository creates a new BuildingRepository
func NewBuildingRepository(db *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{db: db}
}

const selectUserBuildingSQL = `
	SELECT id::text, user_id::text, building_code, current_level, purchased_at
	FROM user_buildings`

func scanUserBuilding(row pgx.Row) (*domain.UserBuilding, error) {
	var b domain.UserBuilding
	if err := row.Scan(&b.ID, &b.UserID, &b.BuildingCode, &b.CurrentLevel, &b.PurchasedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListUserBuildings returns the buildings a user owns, oldest first
func (r *BuildingRepository) ListUserBuildings(ctx context.Context, userID string) ([]domain.UserBuilding, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, selectUserBuildingSQL+` WHERE user_id = $1 ORDER BY purchased_at, building_code`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBuildings, err)
	}
	defer rows.Close()

	buildings := []domain.UserBuilding{}
	for rows.Next() {
		b, err := scanUserBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBuildings, err)
		}
		buildings = append(buildings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBuildings, err)
	}
	return buildings, nil
}

// ListUserAnimals returns the user's animals joined with their type
func (r *BuildingRepository) ListUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT a.id::text, a.user_id::text, a.animal_code, a.user_building_id::text, a.name, a.health,
		       a.last_fed_at, a.last_produced_at,
		       t.name, t.type, t.description, t.icon, t.base_price, t.sell_price,
		       t.production_time, t.production_item, t.production_value, t.unlock_level
		FROM user_animals a
		JOIN animal_types t ON t.code = a.animal_code
		WHERE a.user_id = $1
		ORDER BY a.created_at, a.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAnimals, err)
	}
	defer rows.Close()

	animals := []domain.UserAnimal{}
	for rows.Next() {
		var a domain.UserAnimal
		t := &domain.AnimalType{}
		err := rows.Scan(
			&a.ID, &a.UserID, &a.AnimalCode, &a.UserBuildingID, &a.Name, &a.Health,
			&a.LastFedAt, &a.LastProducedAt,
			&t.Name, &t.Type, &t.Description, &t.Icon, &t.BasePrice, &t.SellPrice,
			&t.ProductionTime, &t.ProductionItem, &t.ProductionValue, &t.UnlockLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAnimals, err)
		}
		t.Code = a.AnimalCode
		a.AnimalType = t
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAnimals, err)
	}
	return animals, nil
}

// BeginTx starts a new transaction
func (r *BuildingRepository) BeginTx(ctx context.Context) (repository.BuildingTx, error) {
	base, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &BuildingTx{txBase: base}, nil
}

// BuildingTx implements repository.BuildingTx
type BuildingTx struct {
	*txBase
}

// GetUserBuildingForUpdate locks the user's building of that code, or returns nil if none
func (t *BuildingTx) GetUserBuildingForUpdate(ctx context.Context, userID, buildingCode string) (*domain.UserBuilding, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	b, err := scanUserBuilding(t.tx.QueryRow(ctx, selectUserBuildingSQL+`
		WHERE user_id = $1 AND building_code = $2
		FOR UPDATE
	`, id, buildingCode))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBuildings, err)
	}
	return b, nil
}

// InsertUserBuilding stores a newly purchased building
func (t *BuildingTx) InsertUserBuilding(ctx context.Context, building *domain.UserBuilding) error {
	bid, err := parseID(building.ID, domain.ErrInvalidInput)
	if err != nil {
		return err
	}
	uid, err := parseID(building.UserID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO user_buildings (id, user_id, building_code, current_level, purchased_at)
		VALUES ($1, $2, $3, $4, $5)
	`, bid, uid, building.BuildingCode, building.CurrentLevel, building.PurchasedAt)
	if err != nil {
		if isConstraintViolation(err, ConstraintUserBuildingCode) {
			return domain.ErrBuildingAlreadyOwned
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertBuilding, err)
	}
	return nil
}

// SetBuildingLevel updates the building level and returns the updated row
func (t *BuildingTx) SetBuildingLevel(ctx context.Context, buildingID string, level int) (*domain.UserBuilding, error) {
	bid, err := parseID(buildingID, domain.ErrBuildingNotOwned)
	if err != nil {
		return nil, err
	}
	b, err := scanUserBuilding(t.tx.QueryRow(ctx, `
		UPDATE user_buildings SET current_level = $2
		WHERE id = $1 AND current_level <= $2
		RETURNING id::text, user_id::text, building_code, current_level, purchased_at
	`, bid, level))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBuildingNotOwned
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBuilding, err)
	}
	return b, nil
}
