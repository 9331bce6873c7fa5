package purchase

// Purchase limits
const (
	MaxLineItems       = 50
	MaxDescriptionLen  = 200
	MaxNotesLength     = 1000
	MaxImageURLs       = 10
	MaxLineQuantity    = 100_000
	MaxUnitPrice       = 10_000_000
	DefaultInvoiceNote = "Thank you for growing with us."
)

// Log messages
const (
	LogMsgTransactionRecorded  = "Purchase recorded"
	LogMsgTransactionApproved  = "Purchase approved"
	LogMsgPublishFailed        = "Failed to publish purchase event"
	LogMsgCustomerLookupFailed = "Invoice customer lookup failed"
)
