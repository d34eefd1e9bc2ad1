package autosave

// MaxBatchSize bounds the number of actions accepted in one autosave
const MaxBatchSize = 500

const outcomeDuplicate = "duplicate"

// Log messages
const (
	LogMsgAutosaveCalled         = "Autosave called"
	LogMsgAutosaveCompleted      = "Autosave completed"
	LogMsgActionAlreadyProcessed = "Skipping already processed action"
	LogMsgActionRejected         = "Action rejected"
	LogMsgReleaseClaimFailed     = "Failed to release action claim"
	LogMsgRecordOutcomeFailed    = "Failed to record action outcome"
)
