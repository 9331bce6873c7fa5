package client

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
)

// UserRef accepts every identifier spelling the API has emitted for a user.
// Embedding it in a DTO promotes the three keys into the DTO's JSON object.
type UserRef struct {
	ID       string `json:"id,omitempty"`
	MongoID  string `json:"mongoId,omitempty"`
	LegacyID string `json:"_id,omitempty"`
}

// UserID resolves the first non-empty spelling into a validated id
func (r UserRef) UserID() (domain.UserID, error) {
	for _, raw := range []string{r.ID, r.MongoID, r.LegacyID} {
		if strings.TrimSpace(raw) != "" {
			return domain.ParseUserID(raw)
		}
	}
	return domain.ParseUserID("")
}

// Profile is the caller's profile as the field client sees it
type Profile struct {
	UserRef
	Name       string           `json:"name"`
	Phone      string           `json:"phone,omitempty"`
	Role       string           `json:"role"`
	SeedsCount *int             `json:"seedsCount,omitempty"`
	Location   *domain.GeoPoint `json:"location,omitempty"`
}

// Seeds returns the assigned seed count, treating unset as zero
func (p *Profile) Seeds() int {
	if p == nil || p.SeedsCount == nil {
		return 0
	}
	return *p.SeedsCount
}

// Hatchery is the seller's current cycle
type Hatchery struct {
	ID        string                 `json:"id,omitempty"`
	LegacyID  string                 `json:"_id,omitempty"`
	UserID    string                 `json:"userId,omitempty"`
	Name      string                 `json:"name,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Site      *domain.GeoPoint       `json:"site,omitempty"`
	Images    []domain.HatcheryImage `json:"images"`
	StartDate time.Time              `json:"startDate"`
	EndDate   time.Time              `json:"endDate"`
}

// Key returns the hatchery id under whichever key the server used
func (h *Hatchery) Key() string {
	if h.ID != "" {
		return h.ID
	}
	return h.LegacyID
}

// SlotInputs maps the images onto tracker inputs
func (h *Hatchery) SlotInputs() [slots.SlotCount]slots.SlotInput {
	if h == nil {
		return [slots.SlotCount]slots.SlotInput{}
	}
	return slots.InputsFromImages(h.Images)
}

// Event is one server-sent event from /events
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Time returns the server timestamp
func (e Event) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// Decode unmarshals the event payload into v
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type profileEnvelope struct {
	envelope
	Profile *Profile `json:"profile"`
}

type hatcheryEnvelope struct {
	envelope
	Hatchery *Hatchery `json:"hatchery"`
}

type transactionsEnvelope struct {
	envelope
	Transactions []domain.Transaction `json:"transactions"`
}

type notificationsEnvelope struct {
	envelope
	Notifications []domain.Notification `json:"notifications"`
}
