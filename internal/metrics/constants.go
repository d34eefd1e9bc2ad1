package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Farm metric names
const (
	MetricNameCropsPlanted   = "farm_crops_planted_total"
	MetricNameCropsHarvested = "farm_crops_harvested_total"
	MetricNameCropsPromoted  = "farm_crops_promoted_total"
	MetricNamePlotsUnlocked  = "farm_plots_unlocked_total"
	MetricNameLevelUps       = "farm_level_ups_total"
)

// Economy metric names
const (
	MetricNameItemsBought        = "economy_items_bought_total"
	MetricNameItemsSold          = "economy_items_sold_total"
	MetricNameCoinsEarned        = "economy_coins_earned_total"
	MetricNameCoinsSpent         = "economy_coins_spent_total"
	MetricNameBuildingsPurchased = "economy_buildings_purchased_total"
	MetricNameBuildingsUpgraded  = "economy_buildings_upgraded_total"
)

// Autosave metric names
const (
	MetricNameAutosaveBatches  = "autosave_batches_total"
	MetricNameAutosaveActions  = "autosave_actions_total"
	MetricNameAutosaveDuration = "autosave_batch_duration_seconds"
)

// Catalog metric names
const (
	MetricNameCatalogCacheLookups = "catalog_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Farm metric help text
const (
	HelpTextCropsPlanted   = "Total number of crops planted"
	HelpTextCropsHarvested = "Total number of crops harvested"
	HelpTextCropsPromoted  = "Total number of crops promoted from growing to ready on read"
	HelpTextPlotsUnlocked  = "Total number of plots unlocked"
	HelpTextLevelUps       = "Total number of player levels gained"
)

// Economy metric help text
const (
	HelpTextItemsBought        = "Total number of items bought from the shop"
	HelpTextItemsSold          = "Total number of items sold to the shop"
	HelpTextCoinsEarned        = "Total coins credited to players"
	HelpTextCoinsSpent         = "Total coins debited from players"
	HelpTextBuildingsPurchased = "Total number of buildings purchased"
	HelpTextBuildingsUpgraded  = "Total number of building upgrades"
)

// Autosave metric help text
const (
	HelpTextAutosaveBatches  = "Total number of autosave batches by result"
	HelpTextAutosaveActions  = "Total number of queued actions processed by outcome"
	HelpTextAutosaveDuration = "Autosave batch processing time in seconds"
)

// Catalog metric help text
const (
	HelpTextCatalogCacheLookups = "Catalog cache lookups by result"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelSeed     = "seed"
	LabelItemType = "item_type"
	LabelItem     = "item"
	LabelSource   = "source"
	LabelBuilding = "building"
	LabelResult   = "result"
	LabelOutcome  = "outcome"
	LabelKind     = "kind"
)

// Coin flow sources and sinks
const (
	CoinFlowHarvest  = "harvest"
	CoinFlowSell     = "sell"
	CoinFlowPlant    = "plant"
	CoinFlowPurchase = "purchase"
	CoinFlowUnlock   = "unlock"
	CoinFlowBuilding = "building"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets     = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	AutosaveLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)
