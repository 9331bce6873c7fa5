package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/notification"
)

// SendNotificationRequest addresses a notice or story. No userIds means everyone.
type SendNotificationRequest struct {
	UserIDs  []string `json:"userIds" validate:"max=500,dive,userid"`
	Kind     string   `json:"kind" validate:"notification_kind"`
	Title    string   `json:"title" validate:"required,max=120"`
	Body     string   `json:"body" validate:"max=2000"`
	ImageURL string   `json:"imageUrl" validate:"omitempty,url"`
}

// NotificationsResponse wraps a notification list
type NotificationsResponse struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message,omitempty"`
	Notifications []domain.Notification `json:"notifications"`
}

// HandleListNotifications returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} NotificationsResponse
// @Router /api/v1/notifications [get]
func HandleListNotifications(svc notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		limit, ok := limitParam(w, r)
		if !ok {
			return
		}

		list, err := svc.ListForUser(r.Context(), id.UserID, limit)
		if err != nil {
			respondServiceError(w, r, "List notifications", err)
			return
		}
		respondNotifications(w, http.StatusOK, "", list)
	}
}

// HandleMarkNotificationRead marks one notification read for the caller
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/notifications/{id}/read [post]
func HandleMarkNotificationRead(svc notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := svc.MarkRead(r.Context(), chi.URLParam(r, "id"), id.UserID); err != nil {
			respondServiceError(w, r, "Mark notification read", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: MsgNotificationRead})
	}
}

// HandleListStories returns unexpired stories visible to the caller
// @Summary Active stories
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NotificationsResponse
// @Router /api/v1/stories [get]
func HandleListStories(svc notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		stories, err := svc.ActiveStories(r.Context(), id.UserID)
		if err != nil {
			respondServiceError(w, r, "List stories", err)
			return
		}
		respondNotifications(w, http.StatusOK, "", stories)
	}
}

// HandleSendNotification sends a notice or story to sellers
// @Summary Send a notification
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendNotificationRequest true "Notification"
// @Success 201 {object} NotificationsResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/admin/notifications [post]
func HandleSendNotification(svc notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendNotificationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Send notification"); err != nil {
			return
		}

		targets := make([]domain.UserID, 0, len(req.UserIDs))
		for _, raw := range req.UserIDs {
			// Already validated by the userid tag
			id, _ := domain.ParseUserID(raw)
			targets = append(targets, id)
		}
		kind := req.Kind
		if kind == "" {
			kind = domain.NotificationKindNotice
		}

		sent, err := svc.Send(r.Context(), notification.SendRequest{
			UserIDs:  targets,
			Kind:     kind,
			Title:    req.Title,
			Body:     req.Body,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			respondServiceError(w, r, "Send notification", err)
			return
		}
		respondNotifications(w, http.StatusCreated, MsgNotificationsCreated, sent)
	}
}

func respondNotifications(w http.ResponseWriter, status int, msg string, list []domain.Notification) {
	if list == nil {
		list = []domain.Notification{}
	}
	respondJSON(w, status, NotificationsResponse{Success: true, Message: msg, Notifications: list})
}
