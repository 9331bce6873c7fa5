package sse

import "time"

// NotificationPayload is the SSE payload for notices and stories
type NotificationPayload struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImageReviewedPayload tells a seller how an admin judged one of their images
type ImageReviewedPayload struct {
	HatcheryID string `json:"hatcheryId"`
	SlotIndex  int    `json:"slotIndex"`
	Status     string `json:"status"`
	Feedback   string `json:"adminFeedback,omitempty"`
}

// CycleClosedPayload announces the end of a cycle
type CycleClosedPayload struct {
	HatcheryID string    `json:"hatcheryId"`
	ClosedAt   time.Time `json:"closedAt"`
}

// SeedsAssignedPayload carries the seller's new seed count
type SeedsAssignedPayload struct {
	SeedsCount int `json:"seedsCount"`
}

// PurchaseApprovedPayload announces an invoice
type PurchaseApprovedPayload struct {
	TransactionID string `json:"transactionId"`
	InvoiceNumber string `json:"invoiceNumber"`
	Total         int64  `json:"total"`
}
