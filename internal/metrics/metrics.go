package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ImagesUploaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameImagesUploaded,
			Help: HelpTextImagesUploaded,
		},
		[]string{LabelSlot},
	)

	ImagesDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameImagesDeleted,
			Help: HelpTextImagesDeleted,
		},
		[]string{LabelSlot},
	)

	ImagesReviewed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameImagesReviewed,
			Help: HelpTextImagesReviewed,
		},
		[]string{LabelStatus},
	)

	CyclesClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCyclesClosed,
			Help: HelpTextCyclesClosed,
		},
		[]string{LabelTrigger},
	)

	SlotRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSlotRejections,
			Help: HelpTextSlotRejections,
		},
		[]string{LabelReason},
	)

	PurchasesApproved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesApproved,
			Help: HelpTextPurchasesApproved,
		},
	)

	PurchaseRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePurchaseRevenue,
			Help: HelpTextPurchaseRevenue,
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsSent,
			Help: HelpTextNotificationsSent,
		},
		[]string{LabelKind},
	)

	SSEClientsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClientsActive,
			Help: HelpTextSSEClientsActive,
		},
	)

	SlotUnlocksPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSlotUnlocksPending,
			Help: HelpTextSlotUnlocksPending,
		},
	)
)
