package user

import (
	"github.com/osse101/HatcheryOps_Go/internal/repository"
)

// Repository is a local interface for profile persistence.
// It embeds repository.Profile so mocks can be generated for this package.
type Repository interface {
	repository.Profile
}
