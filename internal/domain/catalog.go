package domain

// SeedType is a plantable crop definition. GrowthTime is in hours.
type SeedType struct {
	Code         string  `json:"code" yaml:"code"`
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description" yaml:"description"`
	Icon         *string `json:"icon" yaml:"icon"`
	BasePrice    int     `json:"base_price" yaml:"base_price"`
	SellPrice    int     `json:"sell_price" yaml:"sell_price"`
	GrowthTime   float64 `json:"growth_time" yaml:"growth_time"`
	HarvestValue int     `json:"harvest_value" yaml:"harvest_value"`
	UnlockLevel  int     `json:"unlock_level" yaml:"unlock_level"`
}

// AnimalType is a purchasable animal definition. ProductionTime is in hours.
type AnimalType struct {
	Code            string  `json:"code" yaml:"code"`
	Name            string  `json:"name" yaml:"name"`
	Type            string  `json:"type" yaml:"type"`
	Description     string  `json:"description" yaml:"description"`
	Icon            *string `json:"icon" yaml:"icon"`
	BasePrice       int     `json:"base_price" yaml:"base_price"`
	SellPrice       int     `json:"sell_price" yaml:"sell_price"`
	ProductionTime  float64 `json:"production_time" yaml:"production_time"`
	ProductionItem  string  `json:"production_item" yaml:"production_item"`
	ProductionValue int     `json:"production_value" yaml:"production_value"`
	UnlockLevel     int     `json:"unlock_level" yaml:"unlock_level"`
}

// LevelConfig is the capacity and price of one building level
type LevelConfig struct {
	Capacity     int `json:"capacity" yaml:"capacity"`
	UpgradePrice int `json:"upgrade_price" yaml:"upgrade_price"`
}

// BuildingType is a purchasable building definition. LevelConfig is keyed by
// level; the highest key is the max level.
type BuildingType struct {
	Code        string              `json:"code" yaml:"code"`
	Name        string              `json:"name" yaml:"name"`
	Type        string              `json:"type" yaml:"type"`
	Description string              `json:"description" yaml:"description"`
	Icon        *string             `json:"icon" yaml:"icon"`
	BasePrice   int                 `json:"base_price" yaml:"base_price"`
	UnlockLevel int                 `json:"unlock_level" yaml:"unlock_level"`
	LevelConfig map[int]LevelConfig `json:"level_config" yaml:"level_config"`
}

// Catalog is the full set of shop definitions
type Catalog struct {
	Seeds     []SeedType     `json:"seeds" yaml:"seeds"`
	Animals   []AnimalType   `json:"animals" yaml:"animals"`
	Buildings []BuildingType `json:"buildings" yaml:"buildings"`
}
