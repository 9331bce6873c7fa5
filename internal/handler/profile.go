package handler

import (
	"net/http"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
	"github.com/osse101/HatcheryOps_Go/internal/user"
)

// ProfileResponse wraps a single profile
type ProfileResponse struct {
	Success bool            `json:"success"`
	Profile *domain.Profile `json:"profile"`
}

// SellersResponse wraps the seller list
type SellersResponse struct {
	Success bool             `json:"success"`
	Sellers []domain.Profile `json:"sellers"`
}

// LocationRequest is a coordinate pair in a request body
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (l *LocationRequest) toDomain() *domain.GeoPoint {
	if l == nil {
		return nil
	}
	return &domain.GeoPoint{Latitude: l.Latitude, Longitude: l.Longitude}
}

// RegisterProfileRequest creates or refreshes the caller's profile
type RegisterProfileRequest struct {
	Name     string           `json:"name" validate:"required,max=200,excludesall=\x00\n\r\t"`
	Phone    string           `json:"phone" validate:"max=32"`
	Email    string           `json:"email" validate:"omitempty,email"`
	Address  string           `json:"address" validate:"max=500"`
	Location *LocationRequest `json:"location"`
}

// UpdateProfileRequest changes the provided fields only
type UpdateProfileRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200,excludesall=\x00\n\r\t"`
	Phone    *string          `json:"phone" validate:"omitempty,max=32"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Address  *string          `json:"address" validate:"omitempty,max=500"`
	Location *LocationRequest `json:"location"`
}

// SetSeedsRequest assigns a seller's seed count
type SetSeedsRequest struct {
	SeedsCount *int `json:"seedsCount" validate:"required,min=0"`
}

// HandleGetProfile returns the caller's profile
// @Summary Get own profile
// @Description Returns the caller's profile. Clients read seedsCount to gate uploads.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile [get]
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		p, err := svc.GetProfile(r.Context(), id.UserID)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}
		respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: p})
	}
}

// HandleRegisterProfile creates or refreshes the caller's profile
// @Summary Register profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterProfileRequest true "Profile details"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/profile/register [post]
func HandleRegisterProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req RegisterProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register profile"); err != nil {
			return
		}

		p, err := svc.RegisterProfile(r.Context(), domain.Profile{
			ID:       id.UserID,
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Address:  req.Address,
			Location: req.Location.toDomain(),
		})
		if err != nil {
			respondServiceError(w, r, "Register profile", err)
			return
		}

		logger.FromContext(r.Context()).Info(MsgProfileRegistered, "user_id", id.UserID)
		respondJSON(w, http.StatusCreated, ProfileResponse{Success: true, Profile: p})
	}
}

// HandleUpdateProfile edits the caller's contact details
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile [put]
func HandleUpdateProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update profile"); err != nil {
			return
		}

		p, err := svc.UpdateProfile(r.Context(), id.UserID, user.ProfileUpdate{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Address:  req.Address,
			Location: req.Location.toDomain(),
		})
		if err != nil {
			respondServiceError(w, r, "Update profile", err)
			return
		}
		respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: p})
	}
}

// HandleListSellers lists every seller profile
// @Summary List sellers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SellersResponse
// @Router /api/v1/admin/sellers [get]
func HandleListSellers(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellers, err := svc.ListSellers(r.Context())
		if err != nil {
			respondServiceError(w, r, "List sellers", err)
			return
		}
		if sellers == nil {
			sellers = []domain.Profile{}
		}
		respondJSON(w, http.StatusOK, SellersResponse{Success: true, Sellers: sellers})
	}
}

// HandleSetSeeds assigns seeds to a seller, lifting the upload gate when positive
// @Summary Assign seeds
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Seller id"
// @Param request body SetSeedsRequest true "Seed count"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/sellers/{userId}/seeds [put]
func HandleSetSeeds(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := userIDParam(w, r, "userId")
		if !ok {
			return
		}

		var req SetSeedsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set seeds"); err != nil {
			return
		}

		p, err := svc.SetSeedsCount(r.Context(), sellerID, *req.SeedsCount)
		if err != nil {
			respondServiceError(w, r, "Set seeds", err)
			return
		}

		logger.FromContext(r.Context()).Info(MsgSeedsAssigned, "user_id", sellerID, "seeds", *req.SeedsCount)
		respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: p})
	}
}

// HandleGetCacheStats returns profile cache statistics
// @Summary Get profile cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.CacheStats
// @Router /api/v1/admin/cache/stats [get]
func HandleGetCacheStats(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.GetCacheStats())
	}
}
