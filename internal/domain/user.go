package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role names carried in access tokens
const (
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// UserID is a validated user identifier. It is resolved once at the API boundary;
// downstream code never re-parses raw strings.
type UserID string

// ParseUserID validates a raw identifier and returns its canonical form
func ParseUserID(raw string) (UserID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidUserID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidUserID, raw)
	}
	return UserID(id.String()), nil
}

// NewUserID generates a fresh identifier
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

// String returns the canonical string form
func (id UserID) String() string {
	return string(id)
}

// Profile represents a registered seller or admin
type Profile struct {
	ID         UserID    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	Role       string    `json:"role"`
	SeedsCount int       `json:"seedsCount"`
	Location   *GeoPoint `json:"location,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasSeeds reports whether an admin has assigned seeds to the profile.
// Uploads stay gated until this is true.
func (p *Profile) HasSeeds() bool {
	return p != nil && p.SeedsCount > 0
}

// IsAdmin reports whether the profile carries the admin role
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
