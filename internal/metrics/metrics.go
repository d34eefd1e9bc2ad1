package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Farm Metrics
var (
	CropsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsPlanted,
			Help: HelpTextCropsPlanted,
		},
		[]string{LabelSeed},
	)

	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsHarvested,
			Help: HelpTextCropsHarvested,
		},
		[]string{LabelSeed},
	)

	CropsPromoted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCropsPromoted,
			Help: HelpTextCropsPromoted,
		},
	)

	PlotsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlotsUnlocked,
			Help: HelpTextPlotsUnlocked,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)
)

// Economy Metrics
var (
	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItemType, LabelItem},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItemType, LabelItem},
	)

	CoinsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
		[]string{LabelSource},
	)

	CoinsSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
		[]string{LabelSource},
	)

	BuildingsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBuildingsPurchased,
			Help: HelpTextBuildingsPurchased,
		},
		[]string{LabelBuilding},
	)

	BuildingsUpgraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBuildingsUpgraded,
			Help: HelpTextBuildingsUpgraded,
		},
		[]string{LabelBuilding},
	)
)

// Autosave Metrics
var (
	AutosaveBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAutosaveBatches,
			Help: HelpTextAutosaveBatches,
		},
		[]string{LabelResult},
	)

	AutosaveActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAutosaveActions,
			Help: HelpTextAutosaveActions,
		},
		[]string{LabelOutcome},
	)

	AutosaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameAutosaveDuration,
			Help:    HelpTextAutosaveDuration,
			Buckets: AutosaveLatencyBuckets,
		},
	)
)

// Catalog Metrics
var (
	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheLookups,
			Help: HelpTextCatalogCacheLookups,
		},
		[]string{LabelKind, LabelResult},
	)
)
