package domain

import "time"

// Notification kinds
const (
	NotificationKindNotice = "notice"
	NotificationKindStory  = "story"
)

// Notification is an admin-to-seller message. A nil UserID addresses every seller.
type Notification struct {
	ID        string     `json:"id"`
	UserID    *UserID    `json:"userId,omitempty"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// IsBroadcast reports whether the notification targets every seller
func (n *Notification) IsBroadcast() bool {
	return n.UserID == nil
}

// IsExpired reports whether a story has passed its expiry
func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && !now.Before(*n.ExpiresAt)
}
