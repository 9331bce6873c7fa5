package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Identity errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgInvalidUserID = "invalid user id"
	ErrMsgForbidden     = "not allowed to access this resource"

	// Hatchery errors
	ErrMsgHatcheryNotFound = "hatchery not found"
	ErrMsgCycleClosed      = "hatchery cycle is closed"

	// Slot precondition errors (user-facing, shown verbatim by clients)
	ErrMsgSeedsNotAssigned    = "Seeds have not been assigned to your account yet."
	ErrMsgSlotLocked          = "This slot is still locked."
	ErrMsgHatcheryComplete    = "All image slots are already filled."
	ErrMsgDeleteWindowExpired = "Images can only be deleted within 1 minute of upload."
	ErrMsgSlotIndexOutOfRange = "slot index out of range"
	ErrMsgSlotOccupied        = "slot already has an image"
	ErrMsgSlotEmpty           = "slot has no image"
	ErrMsgUnsupportedMedia    = "unsupported image type"
	ErrMsgImageTooLarge       = "image is too large"
	ErrMsgInvalidLocation     = "invalid location"
	ErrMsgInvalidReviewStatus = "invalid review status"
	ErrMsgStorageUnavailable  = "image storage unavailable"

	// Purchase errors
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgInvoiceUnavailable  = "invoice is only available for approved purchases"
	ErrMsgAlreadyApproved     = "transaction is already approved"

	// Notification errors
	ErrMsgNotificationNotFound = "notification not found"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgTxClosed          = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrInvalidUserID = errors.New(ErrMsgInvalidUserID)
	ErrForbidden     = errors.New(ErrMsgForbidden)

	ErrHatcheryNotFound = errors.New(ErrMsgHatcheryNotFound)
	ErrCycleClosed      = errors.New(ErrMsgCycleClosed)

	ErrSeedsNotAssigned    = errors.New(ErrMsgSeedsNotAssigned)
	ErrSlotLocked          = errors.New(ErrMsgSlotLocked)
	ErrHatcheryComplete    = errors.New(ErrMsgHatcheryComplete)
	ErrDeleteWindowExpired = errors.New(ErrMsgDeleteWindowExpired)
	ErrSlotIndexOutOfRange = errors.New(ErrMsgSlotIndexOutOfRange)
	ErrSlotOccupied        = errors.New(ErrMsgSlotOccupied)
	ErrSlotEmpty           = errors.New(ErrMsgSlotEmpty)
	ErrUnsupportedMedia    = errors.New(ErrMsgUnsupportedMedia)
	ErrImageTooLarge       = errors.New(ErrMsgImageTooLarge)
	ErrInvalidLocation     = errors.New(ErrMsgInvalidLocation)
	ErrInvalidReviewStatus = errors.New(ErrMsgInvalidReviewStatus)
	ErrStorageUnavailable  = errors.New(ErrMsgStorageUnavailable)

	ErrTransactionNotFound = errors.New(ErrMsgTransactionNotFound)
	ErrInvoiceUnavailable  = errors.New(ErrMsgInvoiceUnavailable)
	ErrAlreadyApproved     = errors.New(ErrMsgAlreadyApproved)

	ErrNotificationNotFound = errors.New(ErrMsgNotificationNotFound)

	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
