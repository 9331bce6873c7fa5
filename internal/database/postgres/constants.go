package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced profile does not exist
	PgErrorCodeForeignKeyViolation = "23503"
	// PgErrorCodeInvalidText is raised when a path id is not a valid uuid
	PgErrorCodeInvalidText = "22P02"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Profile Operations
const (
	ErrMsgFailedToGetProfile    = "failed to get profile"
	ErrMsgFailedToUpsertProfile = "failed to upsert profile"
	ErrMsgFailedToUpdateProfile = "failed to update profile"
	ErrMsgFailedToSetSeeds      = "failed to set seeds count"
	ErrMsgFailedToListProfiles  = "failed to list profiles"
)

// Error Messages - Hatchery Operations
const (
	ErrMsgFailedToGetHatchery       = "failed to get hatchery"
	ErrMsgFailedToCreateHatchery    = "failed to create hatchery"
	ErrMsgFailedToUpdateHatchery    = "failed to update hatchery"
	ErrMsgFailedToListHatcheries    = "failed to list hatcheries"
	ErrMsgFailedToMarshalImages     = "failed to marshal images"
	ErrMsgFailedToUnmarshalImages   = "failed to unmarshal images"
	ErrMsgActiveHatcheryExists      = "seller already has an active hatchery"
	ErrMsgFailedToLockHatcheryRow   = "failed to lock hatchery row"
	ErrMsgFailedToScanHatcheryRow   = "failed to scan hatchery row"
	ErrMsgFailedToScanProfileRow    = "failed to scan profile row"
	ErrMsgFailedToScanNotification  = "failed to scan notification row"
	ErrMsgFailedToScanTransaction   = "failed to scan transaction row"
	ErrMsgFailedToIterateRows       = "failed to iterate rows"
	ErrMsgFailedToUnmarshalLineItem = "failed to unmarshal line items"
	ErrMsgFailedToMarshalLineItem   = "failed to marshal line items"
)

// Error Messages - Purchase Operations
const (
	ErrMsgFailedToCreateTransaction  = "failed to create transaction"
	ErrMsgFailedToGetTransaction     = "failed to get transaction"
	ErrMsgFailedToListTransactions   = "failed to list transactions"
	ErrMsgFailedToApproveTransaction = "failed to approve transaction"
)

// Error Messages - Notification Operations
const (
	ErrMsgFailedToCreateNotification = "failed to create notification"
	ErrMsgFailedToListNotifications  = "failed to list notifications"
	ErrMsgFailedToMarkRead           = "failed to mark notification read"
	ErrMsgFailedToDeleteExpired      = "failed to delete expired notifications"
)

// Query limits
const (
	DefaultNotificationLimit = 100
)
