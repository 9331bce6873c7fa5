package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/HatcheryOps_Go/internal/sse"
)

// AdminSSEBroadcastRequest represents the request to broadcast an SSE event
type AdminSSEBroadcastRequest struct {
	Type    string          `json:"type" validate:"required,max=64"`
	Payload json.RawMessage `json:"payload"`
}

// AdminSSEHandler handles SSE-related admin tasks
type AdminSSEHandler struct {
	sseHub *sse.Hub
}

// NewAdminSSEHandler creates a new admin SSE handler
func NewAdminSSEHandler(sseHub *sse.Hub) *AdminSSEHandler {
	return &AdminSSEHandler{sseHub: sseHub}
}

// HandleBroadcast broadcasts a manual event to all SSE clients
// @Summary Broadcast an SSE event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminSSEBroadcastRequest true "Event"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/sse/broadcast [post]
func (h *AdminSSEHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req AdminSSEBroadcastRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Broadcast SSE"); err != nil {
		return
	}

	// Decode into interface{} so the hub re-encodes it as-is
	var payload interface{}
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidPayload)
			return
		}
	}

	h.sseHub.Broadcast(req.Type, payload)

	respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: MsgEventBroadcast})
}

// SSEStatsResponse reports live stream counts
type SSEStatsResponse struct {
	Success     bool `json:"success"`
	ClientCount int  `json:"clientCount"`
}

// HandleStats reports the number of connected SSE clients
// @Summary SSE client count
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SSEStatsResponse
// @Router /api/v1/admin/sse/stats [get]
func (h *AdminSSEHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SSEStatsResponse{Success: true, ClientCount: h.sseHub.ClientCount()})
}
