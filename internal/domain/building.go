package domain

import "time"

// UserBuilding is a building owned by a user. CurrentLevel only increases.
type UserBuilding struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	BuildingCode string    `json:"building_code"`
	CurrentLevel int       `json:"current_level"`
	PurchasedAt  time.Time `json:"purchased_at"`
}

// UserBuildingDetail is a user building joined with its type
type UserBuildingDetail struct {
	UserBuilding
	BuildingType    *BuildingType `json:"building_type"`
	CurrentCapacity int           `json:"current_capacity"`
}

// UserAnimal is an animal placed on the farm
type UserAnimal struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	AnimalCode     string      `json:"animal_code"`
	UserBuildingID *string     `json:"user_building_id"`
	Name           *string     `json:"name"`
	Health         int         `json:"health"`
	LastFedAt      *time.Time  `json:"last_fed_at"`
	LastProducedAt *time.Time  `json:"last_produced_at"`
	AnimalType     *AnimalType `json:"animal_type"`
}
