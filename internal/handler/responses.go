package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Clients show Message verbatim.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// respondServiceError logs a failed service call and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" refused", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong. Please try again."
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgResourceNotFoundErr = "Resource not found."
	ErrMsgForbiddenError      = "You are not allowed to do that."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgInvalidUserIDError        = "Invalid user id."
	ErrMsgProfileNotFoundError      = "Profile not found. Please register first."
	ErrMsgHatcheryNotFoundError     = "Hatchery not found."
	ErrMsgCycleClosedError          = "This hatchery cycle is closed."
	ErrMsgSlotEmptyError            = "That slot has no image."
	ErrMsgUnsupportedMediaError     = "Only JPEG, PNG, WebP and HEIC images are accepted."
	ErrMsgImageTooLargeError        = "Image is too large."
	ErrMsgInvalidLocationError      = "Location coordinates are out of range."
	ErrMsgInvalidReviewStatusError  = "Review status must be approved or rejected."
	ErrMsgStorageUnavailableError   = "Image storage is unavailable. Please try again."
	ErrMsgTransactionNotFoundError  = "Purchase not found."
	ErrMsgInvoiceUnavailableError   = "An invoice is only available once the purchase is approved."
	ErrMsgAlreadyApprovedError      = "This purchase is already approved."
	ErrMsgNotificationNotFoundError = "Notification not found."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// users can act on. Slot precondition failures keep their exact wording.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSeedsNotAssigned):
		return http.StatusConflict, domain.ErrMsgSeedsNotAssigned
	case errors.Is(err, domain.ErrSlotLocked):
		return http.StatusConflict, withDetail(err, domain.ErrMsgSlotLocked)
	case errors.Is(err, domain.ErrHatcheryComplete):
		return http.StatusConflict, domain.ErrMsgHatcheryComplete
	case errors.Is(err, domain.ErrDeleteWindowExpired):
		return http.StatusConflict, domain.ErrMsgDeleteWindowExpired
	case errors.Is(err, domain.ErrCycleClosed):
		return http.StatusConflict, ErrMsgCycleClosedError
	case errors.Is(err, domain.ErrSlotEmpty):
		return http.StatusBadRequest, ErrMsgSlotEmptyError
	case errors.Is(err, domain.ErrSlotIndexOutOfRange):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, ErrMsgUnsupportedMediaError
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, ErrMsgImageTooLargeError
	case errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusBadRequest, ErrMsgInvalidLocationError
	case errors.Is(err, domain.ErrInvalidReviewStatus):
		return http.StatusBadRequest, ErrMsgInvalidReviewStatusError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundError
	case errors.Is(err, domain.ErrHatcheryNotFound):
		return http.StatusNotFound, ErrMsgHatcheryNotFoundError
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, ErrMsgTransactionNotFoundError
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, ErrMsgNotificationNotFoundError
	case errors.Is(err, domain.ErrInvoiceUnavailable):
		return http.StatusConflict, ErrMsgInvoiceUnavailableError
	case errors.Is(err, domain.ErrAlreadyApproved):
		return http.StatusConflict, ErrMsgAlreadyApprovedError
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrMsgForbiddenError
	case errors.Is(err, domain.ErrInvalidUserID):
		return http.StatusBadRequest, ErrMsgInvalidUserIDError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, withDetail(err, ErrMsgInvalidRequestError)
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrMsgStorageUnavailableError
	case errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// withDetail appends the detail a service wrapped around a sentinel, so
// "This slot is still locked.: unlocks in 04:30" reads
// "This slot is still locked. Unlocks in 04:30."
func withDetail(err error, base string) string {
	msg := err.Error()
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 || idx+2 >= len(msg) {
		return base
	}
	detail := msg[idx+2:]
	detail = strings.ToUpper(detail[:1]) + detail[1:]
	if !strings.HasSuffix(detail, ".") {
		detail += "."
	}
	return base + " " + detail
}
