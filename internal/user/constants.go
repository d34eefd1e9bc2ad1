package user

// Log messages
const (
	LogMsgCreateNewUserCalled  = "CreateNewUser called"
	LogMsgUpdateUserDataCalled = "UpdateUserData called"
	LogMsgUserCreated = "User created with starter farm"
	LogMsgUserRenamed = "User renamed"
)

// Error messages
const (
	ErrMsgBeginTxFailed     = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed    = "failed to commit transaction: %w"
	ErrMsgInsertUserFailed  = "failed to insert user: %w"
	ErrMsgInsertPlotsFailed = "failed to create starter plots: %w"
	ErrMsgInventoryFailed   = "failed to load inventory: %w"
)
