package domain

import "time"

// Transaction statuses
const (
	TransactionPending   = "pending"
	TransactionApproved  = "approved"
	TransactionCancelled = "cancelled"
)

// LineItem is one billed entry of a transaction
type LineItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// Amount returns quantity times unit price
func (li LineItem) Amount() int64 {
	return li.Quantity * li.UnitPrice
}

// Transaction is a seed purchase recorded by an admin
type Transaction struct {
	ID         string     `json:"id"`
	UserID     UserID     `json:"userId"`
	HatcheryID string     `json:"hatcheryId,omitempty"`
	Status     string     `json:"status"`
	Items      []LineItem `json:"items"`
	Total      int64      `json:"total"`
	ImageURLs  []string   `json:"imageUrls,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

// ComputeTotal sums the line items
func (t *Transaction) ComputeTotal() int64 {
	var total int64
	for _, item := range t.Items {
		total += item.Amount()
	}
	return total
}
