package domain

import "time"

// CoinBalance is the user portion of several transaction results
type CoinBalance struct {
	Coin int `json:"coin"`
}

// PlantedCrop is the crop portion of a PlantResult
type PlantedCrop struct {
	ID        string     `json:"id"`
	PlotID    string     `json:"plotId"`
	SeedCode  string     `json:"seedCode"`
	PlantedAt time.Time  `json:"plantedAt"`
	ReadyAt   time.Time  `json:"readyAt"`
	Status    CropStatus `json:"status"`
}

// PlantResult is returned by plant_seed
type PlantResult struct {
	Success bool        `json:"success"`
	Crop    PlantedCrop `json:"crop"`
	User    CoinBalance `json:"user"`
}

// HarvestedCrop summarises a harvested crop
type HarvestedCrop struct {
	SeedCode     string `json:"seedCode"`
	SeedName     string `json:"seedName"`
	HarvestValue int    `json:"harvestValue"`
	Exp          int    `json:"exp"`
}

// HarvestUser is the user portion of a HarvestResult
type HarvestUser struct {
	Coin      int  `json:"coin"`
	Exp       int  `json:"exp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveledUp"`
}

// HarvestResult is returned by harvest_crop
type HarvestResult struct {
	Success   bool          `json:"success"`
	Harvested HarvestedCrop `json:"harvested"`
	User      HarvestUser   `json:"user"`
}

// PurchaseResult is returned by purchase_item
type PurchaseResult struct {
	Success   bool `json:"success"`
	CoinsLeft int  `json:"coins_left"`
	TotalCost int  `json:"total_cost"`
	Quantity  int  `json:"quantity"`
}

// SellResult is returned by sell_item
type SellResult struct {
	Success        bool `json:"success"`
	CoinsEarned    int  `json:"coins_earned"`
	NewCoinBalance int  `json:"new_coin_balance"`
	QuantitySold   int  `json:"quantity_sold"`
}

// UnlockedPlot is the plot portion of an UnlockResult
type UnlockedPlot struct {
	ID         string     `json:"id"`
	PlotNumber int        `json:"plotNumber"`
	IsUnlocked bool       `json:"isUnlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}

// UnlockResult is returned by unlock_plot
type UnlockResult struct {
	Success     bool         `json:"success"`
	Plot        UnlockedPlot `json:"plot"`
	User        CoinBalance  `json:"user"`
	UnlockPrice int          `json:"unlockPrice"`
}

// BuildingPurchaseResult is returned by purchase_building
type BuildingPurchaseResult struct {
	Data      UserBuilding `json:"data"`
	CoinsLeft int          `json:"coins_left"`
}

// BuildingUpgradeResult is returned by upgrade_building
type BuildingUpgradeResult struct {
	Data        UserBuilding `json:"data"`
	NewLevel    int          `json:"new_level"`
	NewCapacity int          `json:"new_capacity"`
	CoinsLeft   int          `json:"coins_left"`
}

// CropView is a crop as rendered by get_farm_state
type CropView struct {
	ID            string      `json:"id"`
	SeedCode      string      `json:"seedCode"`
	SeedName      string      `json:"seedName"`
	SeedIcon      *string     `json:"seedIcon"`
	PlantedAt     time.Time   `json:"plantedAt"`
	ReadyAt       time.Time   `json:"readyAt"`
	Status        CropStatus  `json:"status"`
	Stage         GrowthStage `json:"stage"`
	Progress      int         `json:"progress"`
	RemainingTime int         `json:"remainingTime"`
}

// PlotView is a plot as rendered by get_farm_state
type PlotView struct {
	ID         string     `json:"id"`
	PlotNumber int        `json:"plotNumber"`
	PositionX  *int       `json:"positionX"`
	PositionY  *int       `json:"positionY"`
	IsUnlocked bool       `json:"isUnlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
	Crop       *CropView  `json:"crop"`
}

// FarmStats counts plots and crops by state
type FarmStats struct {
	TotalPlots    int `json:"totalPlots"`
	UnlockedPlots int `json:"unlockedPlots"`
	ActiveCrops   int `json:"activeCrops"`
	ReadyCrops    int `json:"readyCrops"`
}

// FarmState is returned by get_farm_state
type FarmState struct {
	Plots []PlotView `json:"plots"`
	Stats FarmStats  `json:"stats"`
}
