package notification

import "github.com/osse101/HatcheryOps_Go/internal/repository"

// Repository is a local interface for notification persistence
type Repository interface {
	repository.Notification
}
