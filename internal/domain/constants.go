package domain

import "time"

// Starter account values granted by create_new_user
const (
	StarterCoin  = 100
	StarterLevel = 1
	StarterExp   = 0
)

// Starter farm layout: a square grid of plots, the first FreePlotCount of
// which are unlocked at signup.
const (
	StarterGridSize  = 3
	StarterPlotCount = StarterGridSize * StarterGridSize
	FreePlotCount    = 3
	PlotSpacing      = 1
)

// Economy tuning
const (
	ExpPerLevel       = 100
	HarvestExpDivisor = 5
	PlotUnlockStep    = 100
)

// Building type codes
const (
	BuildingCoop = "bld_coop"
	BuildingBarn = "bld_barn"
)

// Animal type codes
const (
	AnimalChicken = "anl_chicken"
	AnimalCow     = "anl_cow"
	AnimalPig     = "anl_pig"
	AnimalSheep   = "anl_sheep"
)

// AutosaveInterval is how long the client accumulates actions before flushing.
const AutosaveInterval = 10 * time.Second
