package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/HatcheryOps_Go/internal/metrics"
	"github.com/osse101/HatcheryOps_Go/internal/sse"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Business BusinessMetrics `json:"business"`
	SSE      SSEMetrics      `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type BusinessMetrics struct {
	ImagesUploadedBySlot   map[string]float64 `json:"images_uploaded_by_slot"`
	SlotRejectionsByReason map[string]float64 `json:"slot_rejections_by_reason"`
	CyclesClosed           float64            `json:"cycles_closed"`
	PurchasesApproved      float64            `json:"purchases_approved"`
	PurchaseRevenue        float64            `json:"purchase_revenue"`
	NotificationsByKind    map[string]float64 `json:"notifications_by_kind"`
	SlotUnlocksPending     float64            `json:"slot_unlocks_pending"`
}

type SSEMetrics struct {
	ClientCount int `json:"client_count"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	sseHub *sse.Hub
}

// NewAdminMetricsHandler creates a new admin metrics handler
func NewAdminMetricsHandler(sseHub *sse.Hub) *AdminMetricsHandler {
	return &AdminMetricsHandler{sseHub: sseHub}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// @Summary Dashboard metrics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics()
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrMsgGatherMetricsFailed)
		return
	}

	resp.SSE.ClientCount = h.sseHub.ClientCount()

	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics() (*AdminMetricsResponse, error) {
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Business: BusinessMetrics{
			ImagesUploadedBySlot:   make(map[string]float64),
			SlotRejectionsByReason: make(map[string]float64),
			NotificationsByKind:    make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			var merged *dto.Histogram
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist == nil {
					continue
				}
				count += hist.GetSampleCount()
				sum += hist.GetSampleSum()
				if merged == nil || hist.GetSampleCount() > merged.GetSampleCount() {
					merged = hist
				}
			}
			if count > 0 {
				resp.HTTP.AvgLatencyMs = sum / float64(count) * 1000
			}
			if merged != nil {
				// P95 of the busiest route approximates the overall tail
				resp.HTTP.P95LatencyMs = estimateQuantile(merged, 0.95) * 1000
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			sumByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameImagesUploaded:
			sumByLabel(mf, metrics.LabelSlot, resp.Business.ImagesUploadedBySlot)
		case metrics.MetricNameSlotRejections:
			sumByLabel(mf, metrics.LabelReason, resp.Business.SlotRejectionsByReason)
		case metrics.MetricNameNotificationsSent:
			sumByLabel(mf, metrics.LabelKind, resp.Business.NotificationsByKind)
		case metrics.MetricNameCyclesClosed:
			for _, m := range mf.GetMetric() {
				resp.Business.CyclesClosed += m.GetCounter().GetValue()
			}
		case metrics.MetricNamePurchasesApproved:
			for _, m := range mf.GetMetric() {
				resp.Business.PurchasesApproved += m.GetCounter().GetValue()
			}
		case metrics.MetricNamePurchaseRevenue:
			for _, m := range mf.GetMetric() {
				resp.Business.PurchaseRevenue += m.GetCounter().GetValue()
			}
		case metrics.MetricNameSlotUnlocksPending:
			for _, m := range mf.GetMetric() {
				resp.Business.SlotUnlocksPending += m.GetGauge().GetValue()
			}
		}
	}

	return resp, nil
}

// sumByLabel adds each counter of mf into out under its label value
func sumByLabel(mf *dto.MetricFamily, label string, out map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, label); v != "" {
			out[v] += m.GetCounter().GetValue()
		}
	}
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	var cumulativeCount uint64

	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		cumulativeCount = bucket.GetCumulativeCount()
		if float64(cumulativeCount) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	// If we reach here, return the last bucket's upper bound
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
