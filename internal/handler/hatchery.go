package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/hatchery"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// Multipart form fields of the upload endpoint
const (
	uploadFileField      = "images"
	uploadLatitudeField  = "latitude"
	uploadLongitudeField = "longitude"

	// multipartOverhead covers form boundaries and coordinate fields on top of the file
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

// HatcheryResponse wraps a single hatchery
type HatcheryResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Hatchery *domain.Hatchery `json:"hatchery"`
}

// HatcheriesResponse wraps a hatchery list
type HatcheriesResponse struct {
	Success    bool              `json:"success"`
	Hatcheries []domain.Hatchery `json:"hatcheries"`
}

// BoardResponse is a hatchery with its derived slot board
type BoardResponse struct {
	Success bool `json:"success"`
	*hatchery.BoardView
}

// ReviewImageRequest is an admin verdict on one slot image
type ReviewImageRequest struct {
	Status   string `json:"status" validate:"required,review_status"`
	Feedback string `json:"feedback" validate:"max=1000"`
}

// HandleUploadImage stores an image in the next free slot
// @Summary Upload a slot image
// @Description Multipart upload. The image goes to the next free slot once seeds are assigned and the slot is unlocked.
// @Tags hatcheries
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param hatcheryId path string true "Hatchery id"
// @Param images formData file true "Image file"
// @Param latitude formData number false "Capture latitude"
// @Param longitude formData number false "Capture longitude"
// @Success 201 {object} HatcheryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Seeds not assigned, slot locked, cycle closed or complete"
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/v1/hatcheries/upload-image/{hatcheryId} [post]
func HandleUploadImage(svc hatchery.Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		hatcheryID := chi.URLParam(r, "hatcheryId")
		log := logger.FromContext(r.Context())

		if maxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+multipartOverhead)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(w, http.StatusRequestEntityTooLarge, ErrMsgImageTooLargeError)
				return
			}
			log.Warn("Failed to parse upload form", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidMultipart)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile(uploadFileField)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgMissingImageFile)
			return
		}
		defer file.Close()

		location, err := parseFormLocation(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidCoordinate)
			return
		}

		LogRequestFields(log, "hatchery_id", hatcheryID, "filename", header.Filename,
			"size", header.Size, "has_location", location != nil)

		h, err := svc.UploadImage(r.Context(), id, hatcheryID, hatchery.Upload{File: file, Location: location})
		if err != nil {
			respondServiceError(w, r, "Upload image", err)
			return
		}
		respondJSON(w, http.StatusCreated, HatcheryResponse{Success: true, Message: MsgImageUploaded, Hatchery: h})
	}
}

// parseFormLocation reads the optional coordinate fields. Both or neither must be present.
func parseFormLocation(r *http.Request) (*domain.GeoPoint, error) {
	latRaw := strings.TrimSpace(r.FormValue(uploadLatitudeField))
	lonRaw := strings.TrimSpace(r.FormValue(uploadLongitudeField))
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, domain.ErrInvalidLocation
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, err
	}
	return &domain.GeoPoint{Latitude: lat, Longitude: lon}, nil
}

// HandleDeleteImage removes a slot image within its delete window
// @Summary Delete a slot image
// @Description Allowed within 1 minute of upload, or any time for a rejected image. Later images shift down.
// @Tags hatcheries
// @Produce json
// @Security BearerAuth
// @Param hatcheryId path string true "Hatchery id"
// @Param index path int true "Slot index (0-3)"
// @Success 200 {object} HatcheryResponse
// @Failure 409 {object} ErrorResponse "Delete window expired"
// @Router /api/v1/hatcheries/delete-image/{hatcheryId}/{index} [delete]
func HandleDeleteImage(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		index, ok := slotIndexParam(w, r, "index")
		if !ok {
			return
		}

		h, err := svc.DeleteImage(r.Context(), id, chi.URLParam(r, "hatcheryId"), index)
		if err != nil {
			respondServiceError(w, r, "Delete image", err)
			return
		}
		respondJSON(w, http.StatusOK, HatcheryResponse{Success: true, Message: MsgImageDeleted, Hatchery: h})
	}
}

// HandleGetUserHatchery returns a seller's current cycle. A seller visiting
// their own upload surface gets a new cycle when none is active.
// @Summary Get a seller's current hatchery
// @Tags hatcheries
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Seller id"
// @Success 200 {object} HatcheryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hatcheries/user/{userId} [get]
func HandleGetUserHatchery(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		sellerID, ok := userIDParam(w, r, "userId")
		if !ok {
			return
		}
		if !id.CanAccess(sellerID) {
			respondError(w, http.StatusForbidden, ErrMsgForbiddenError)
			return
		}

		var (
			h   *domain.Hatchery
			err error
		)
		if sellerID == id.UserID {
			h, err = svc.GetOrCreate(r.Context(), sellerID)
		} else {
			h, err = svc.GetCurrent(r.Context(), sellerID)
		}
		if err != nil {
			respondServiceError(w, r, "Get hatchery", err)
			return
		}
		respondJSON(w, http.StatusOK, HatcheryResponse{Success: true, Hatchery: h})
	}
}

// HandleCreateHatchery starts a cycle for the caller unless one is active
// @Summary Create a hatchery
// @Tags hatcheries
// @Produce json
// @Security BearerAuth
// @Success 201 {object} HatcheryResponse "Created"
// @Success 200 {object} HatcheryResponse "Already active"
// @Router /api/v1/hatcheries/create [post]
func HandleCreateHatchery(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		h, created, err := svc.Create(r.Context(), id.UserID)
		if err != nil {
			respondServiceError(w, r, "Create hatchery", err)
			return
		}
		if !created {
			respondJSON(w, http.StatusOK, HatcheryResponse{Success: true, Message: MsgHatcheryExists, Hatchery: h})
			return
		}
		respondJSON(w, http.StatusCreated, HatcheryResponse{Success: true, Message: MsgHatcheryCreated, Hatchery: h})
	}
}

// HandleGetBoard returns the derived slot states of a hatchery
// @Summary Get slot board
// @Tags hatcheries
// @Produce json
// @Security BearerAuth
// @Param hatcheryId path string true "Hatchery id"
// @Success 200 {object} BoardResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hatcheries/{hatcheryId}/slots [get]
func HandleGetBoard(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		view, err := svc.GetBoard(r.Context(), id, chi.URLParam(r, "hatcheryId"))
		if err != nil {
			respondServiceError(w, r, "Get board", err)
			return
		}
		respondJSON(w, http.StatusOK, BoardResponse{Success: true, BoardView: view})
	}
}

// HandleListHatcheries lists cycles, optionally by status
// @Summary List hatcheries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or closed"
// @Success 200 {object} HatcheriesResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/hatcheries [get]
func HandleListHatcheries(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListHatcheries(r.Context(), GetOptionalQueryParam(r, "status", ""))
		if err != nil {
			respondServiceError(w, r, "List hatcheries", err)
			return
		}
		if list == nil {
			list = []domain.Hatchery{}
		}
		respondJSON(w, http.StatusOK, HatcheriesResponse{Success: true, Hatcheries: list})
	}
}

// HandleReviewImage approves or rejects a slot image
// @Summary Review a slot image
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hatcheryId path string true "Hatchery id"
// @Param index path int true "Slot index (0-3)"
// @Param request body ReviewImageRequest true "Verdict"
// @Success 200 {object} HatcheryResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/admin/hatcheries/{hatcheryId}/images/{index}/review [put]
func HandleReviewImage(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := slotIndexParam(w, r, "index")
		if !ok {
			return
		}

		var req ReviewImageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Review image"); err != nil {
			return
		}

		h, err := svc.ReviewImage(r.Context(), chi.URLParam(r, "hatcheryId"), index, req.Status, req.Feedback)
		if err != nil {
			respondServiceError(w, r, "Review image", err)
			return
		}
		respondJSON(w, http.StatusOK, HatcheryResponse{Success: true, Hatchery: h})
	}
}

// HandleCloseCycle closes a cycle ahead of its end date
// @Summary Close a hatchery cycle
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param hatcheryId path string true "Hatchery id"
// @Success 200 {object} HatcheryResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/hatcheries/{hatcheryId}/close [post]
func HandleCloseCycle(svc hatchery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.CloseCycle(r.Context(), chi.URLParam(r, "hatcheryId"), false)
		if err != nil {
			respondServiceError(w, r, "Close cycle", err)
			return
		}
		respondJSON(w, http.StatusOK, HatcheryResponse{Success: true, Message: MsgCycleClosed, Hatchery: h})
	}
}
