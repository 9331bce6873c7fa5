package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
)

func TestEventMetricsCollector_HandleEvent(t *testing.T) {
	collector := NewEventMetricsCollector()
	bus := event.NewMemoryBus()
	require.NoError(t, collector.Register(bus))
	ctx := context.Background()

	h := &domain.Hatchery{
		ID:     "h-metrics",
		UserID: domain.NewUserID(),
		Images: []domain.HatcheryImage{
			{URL: "a", UploadedAt: time.Now(), Status: domain.ImageStatusApproved},
			{URL: "b", UploadedAt: time.Now()},
		},
	}

	t.Run("upload counts by slot", func(t *testing.T) {
		before := testutil.ToFloat64(ImagesUploaded.WithLabelValues("1"))
		require.NoError(t, bus.Publish(ctx, event.NewImageUploadedEvent(h, 1)))
		assert.Equal(t, before+1, testutil.ToFloat64(ImagesUploaded.WithLabelValues("1")))
	})

	t.Run("review counts by status", func(t *testing.T) {
		before := testutil.ToFloat64(ImagesReviewed.WithLabelValues(domain.ImageStatusApproved))
		require.NoError(t, bus.Publish(ctx, event.NewImageReviewedEvent(h, 0)))
		assert.Equal(t, before+1, testutil.ToFloat64(ImagesReviewed.WithLabelValues(domain.ImageStatusApproved)))
	})

	t.Run("automatic close uses trigger label", func(t *testing.T) {
		before := testutil.ToFloat64(CyclesClosed.WithLabelValues(TriggerAutomatic))
		require.NoError(t, bus.Publish(ctx, event.NewCycleClosedEvent(h, time.Now(), true)))
		assert.Equal(t, before+1, testutil.ToFloat64(CyclesClosed.WithLabelValues(TriggerAutomatic)))
	})

	t.Run("approved purchase adds revenue", func(t *testing.T) {
		count := testutil.ToFloat64(PurchasesApproved)
		revenue := testutil.ToFloat64(PurchaseRevenue)
		tx := &domain.Transaction{ID: "tx1", UserID: h.UserID, Total: 2500}
		require.NoError(t, bus.Publish(ctx, event.NewPurchaseApprovedEvent(tx, "INV-202503-TX1")))
		assert.Equal(t, count+1, testutil.ToFloat64(PurchasesApproved))
		assert.Equal(t, revenue+2500, testutil.ToFloat64(PurchaseRevenue))
	})

	t.Run("bad payload is ignored", func(t *testing.T) {
		before := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ImageDeleted)))
		err := collector.HandleEvent(ctx, event.Event{Type: event.ImageDeleted, Payload: make(chan int)})
		assert.NoError(t, err)
		assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ImageDeleted))))
	})
}

func TestRecordSlotRejection(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{fmt.Errorf("%w: unlocks in 02:00", domain.ErrSlotLocked), ReasonSlotLocked},
		{domain.ErrSeedsNotAssigned, ReasonSeedsNotAssigned},
		{domain.ErrDeleteWindowExpired, ReasonDeleteWindowExpired},
		{domain.ErrHatcheryComplete, ReasonHatcheryComplete},
		{domain.ErrCycleClosed, ReasonCycleClosed},
		{domain.ErrStorageUnavailable, ReasonOther},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			before := testutil.ToFloat64(SlotRejections.WithLabelValues(tt.reason))
			RecordSlotRejection(tt.err)
			assert.Equal(t, before+1, testutil.ToFloat64(SlotRejections.WithLabelValues(tt.reason)))
		})
	}

	RecordSlotRejection(nil)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/hatcheries/{hatcheryId}/slots", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	label := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/hatcheries/{hatcheryId}/slots", "418")
	before := testutil.ToFloat64(label)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hatcheries/abc123/slots", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(label))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}
