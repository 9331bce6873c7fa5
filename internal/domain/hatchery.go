package domain

import "time"

// SlotCount is the fixed number of image slots per hatchery cycle
const SlotCount = 4

// Image review statuses set by admins
const (
	ImageStatusPending  = "pending"
	ImageStatusApproved = "approved"
	ImageStatusRejected = "rejected"
)

// Hatchery cycle statuses
const (
	HatcheryStatusActive = "active"
	HatcheryStatusClosed = "closed"
)

// GeoPoint is a WGS84 coordinate pair
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HatcheryImage is an uploaded progress image occupying one slot
type HatcheryImage struct {
	URL           string    `json:"url"`
	PublicID      string    `json:"public_id"`
	UploadedAt    time.Time `json:"uploadedAt"`
	Location      *GeoPoint `json:"location,omitempty"`
	DistanceKm    *float64  `json:"distanceKm,omitempty"`
	Status        string    `json:"status,omitempty"`
	AdminFeedback string    `json:"adminFeedback,omitempty"`
}

// IsRejected reports whether an admin rejected the image
func (img HatcheryImage) IsRejected() bool {
	return img.Status == ImageStatusRejected
}

// Hatchery is one seller's 30-day seed-growing cycle
type Hatchery struct {
	ID        string          `json:"id"`
	UserID    UserID          `json:"userId"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Site      *GeoPoint       `json:"site,omitempty"`
	Images    []HatcheryImage `json:"images"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsClosed reports whether the cycle no longer accepts uploads
func (h *Hatchery) IsClosed(now time.Time) bool {
	return h.Status == HatcheryStatusClosed || !now.Before(h.EndDate)
}

// OwnedBy reports whether the hatchery belongs to the user
func (h *Hatchery) OwnedBy(userID UserID) bool {
	return h.UserID == userID
}
