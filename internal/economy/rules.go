package economy

import (
	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// CanAfford reports whether a balance covers a price
func CanAfford(coin, price int) bool {
	return coin >= price
}

// MeetsLevel reports whether a player level satisfies an unlock level
func MeetsLevel(level, unlockLevel int) bool {
	return level >= unlockLevel
}

// NextBuildingLevelConfig returns the config for currentLevel+1.
// ok is false when the building is already at max level.
func NextBuildingLevelConfig(levels map[int]domain.LevelConfig, currentLevel int) (cfg domain.LevelConfig, ok bool) {
	cfg, ok = levels[currentLevel+1]
	return cfg, ok
}

// CapacityAt returns the capacity of a building level, 0 if undefined
func CapacityAt(levels map[int]domain.LevelConfig, level int) int {
	return levels[level].Capacity
}

// UnlockPriceForPlot returns the coin price of unlocking a plot.
// The free plots cost nothing; each later plot costs one step more than the last.
func UnlockPriceForPlot(plotNumber int) int {
	if plotNumber <= domain.FreePlotCount {
		return 0
	}
	return (plotNumber - domain.FreePlotCount) * domain.PlotUnlockStep
}

// ExpForLevel returns the cumulative exp needed to reach level
func ExpForLevel(level int) int {
	return level * domain.ExpPerLevel
}

// HarvestExp returns the exp granted for a harvest worth value coins
func HarvestExp(value int) int {
	if value <= 0 {
		return 0
	}
	return value / domain.HarvestExpDivisor
}

// Progress is a player's level and cumulative exp
type Progress struct {
	Level     int
	Exp       int
	LeveledUp bool
}

// ApplyExp adds gain to exp and raises level as many times as the new total
// allows. Exp carries over; it is never reset on level up.
func ApplyExp(level, exp, gain int) Progress {
	p := Progress{Level: level, Exp: exp + gain}
	for p.Exp >= ExpForLevel(p.Level+1) {
		p.Level++
		p.LeveledUp = true
	}
	return p
}
