package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"seeds", fmt.Errorf("upload: %w", domain.ErrSeedsNotAssigned), http.StatusConflict, domain.ErrMsgSeedsNotAssigned},
		{"slot locked countdown", fmt.Errorf("%w: unlocks in %s", domain.ErrSlotLocked, "04:30"), http.StatusConflict, "This slot is still locked. Unlocks in 04:30."},
		{"slot locked order", fmt.Errorf("%w: upload slot %d first", domain.ErrSlotLocked, 2), http.StatusConflict, "This slot is still locked. Upload slot 2 first."},
		{"bare slot locked", domain.ErrSlotLocked, http.StatusConflict, domain.ErrMsgSlotLocked},
		{"complete", domain.ErrHatcheryComplete, http.StatusConflict, domain.ErrMsgHatcheryComplete},
		{"delete window", domain.ErrDeleteWindowExpired, http.StatusConflict, domain.ErrMsgDeleteWindowExpired},
		{"unsupported media", domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType, ErrMsgUnsupportedMediaError},
		{"too large", domain.ErrImageTooLarge, http.StatusRequestEntityTooLarge, ErrMsgImageTooLargeError},
		{"hatchery missing", domain.ErrHatcheryNotFound, http.StatusNotFound, ErrMsgHatcheryNotFoundError},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ErrMsgForbiddenError},
		{"invalid input detail", fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidRequestError + " Quantity must be positive."},
		{"storage", domain.ErrStorageUnavailable, http.StatusServiceUnavailable, ErrMsgStorageUnavailableError},
		{"timeout", domain.ErrConnectionTimeout, http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{"database detail hidden", fmt.Errorf("%w: relation missing", domain.ErrDatabaseError), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown", assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
