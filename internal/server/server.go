package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/database"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/handler"
	"github.com/osse101/HatcheryOps_Go/internal/hatchery"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
	"github.com/osse101/HatcheryOps_Go/internal/metrics"
	"github.com/osse101/HatcheryOps_Go/internal/notification"
	"github.com/osse101/HatcheryOps_Go/internal/purchase"
	"github.com/osse101/HatcheryOps_Go/internal/sse"
	"github.com/osse101/HatcheryOps_Go/internal/user"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	TrustedProxies []string
	MaxUploadBytes int64
	// MediaDir is served under /media/ when images are stored locally
	MediaDir string
}

// Services groups the domain services mounted on the router
type Services struct {
	Users         user.Service
	Hatcheries    hatchery.Service
	Purchases     purchase.Service
	Notifications notification.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance
func NewServer(opts Options, issuer *auth.Issuer, dbPool database.Pool, store handler.HealthChecker, svc Services, sseHub *sse.Hub) *Server {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts, issuer, dbPool, store, svc, sseHub),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
	// Open event streams never go idle, so Shutdown would wait them out
	httpServer.RegisterOnShutdown(sseHub.Stop)

	return &Server{
		httpServer: httpServer,
		dbPool:     dbPool,
		services:   svc,
	}
}

// NewRouter builds the route tree. Exposed separately so tests can drive it
// through httptest without a listener.
func NewRouter(opts Options, issuer *auth.Issuer, dbPool database.Pool, store handler.HealthChecker, svc Services, sseHub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(AuthMiddleware(issuer, opts.TrustedProxies, detector))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	if opts.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir))))
	} else {
		slog.Default().Debug(LogMsgMediaDisabled)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Event stream stays outside the body limit and is long lived
		r.Get("/events", sse.Handler(sseHub))

		// Multipart uploads enforce their own limit from MaxUploadBytes
		r.Post("/hatcheries/upload-image/{hatcheryId}", handler.HandleUploadImage(svc.Hatcheries, opts.MaxUploadBytes))

		r.Group(func(r chi.Router) {
			r.Use(RequestSizeLimitMiddleware(MaxJSONBodyBytes))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", handler.HandleGetProfile(svc.Users))
				r.Put("/", handler.HandleUpdateProfile(svc.Users))
				r.Post("/register", handler.HandleRegisterProfile(svc.Users))
			})

			r.Route("/hatcheries", func(r chi.Router) {
				r.Post("/create", handler.HandleCreateHatchery(svc.Hatcheries))
				r.Get("/user/{userId}", handler.HandleGetUserHatchery(svc.Hatcheries))
				r.Delete("/delete-image/{hatcheryId}/{index}", handler.HandleDeleteImage(svc.Hatcheries))
				r.Get("/{hatcheryId}/slots", handler.HandleGetBoard(svc.Hatcheries))
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", handler.HandleListPurchases(svc.Purchases))
				r.Get("/{txId}", handler.HandleGetPurchase(svc.Purchases))
				r.Get("/{txId}/invoice", handler.HandleGetInvoice(svc.Purchases))
			})

			r.Get("/notifications", handler.HandleListNotifications(svc.Notifications))
			r.Post("/notifications/{id}/read", handler.HandleMarkNotificationRead(svc.Notifications))
			r.Get("/stories", handler.HandleListStories(svc.Notifications))

			// Admin routes
			adminSSEHandler := handler.NewAdminSSEHandler(sseHub)
			adminMetricsHandler := handler.NewAdminMetricsHandler(sseHub)
			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireRole(domain.RoleAdmin))

				r.Get("/sellers", handler.HandleListSellers(svc.Users))
				r.Put("/sellers/{userId}/seeds", handler.HandleSetSeeds(svc.Users))

				r.Get("/hatcheries", handler.HandleListHatcheries(svc.Hatcheries))
				r.Put("/hatcheries/{hatcheryId}/images/{index}/review", handler.HandleReviewImage(svc.Hatcheries))
				r.Post("/hatcheries/{hatcheryId}/close", handler.HandleCloseCycle(svc.Hatcheries))

				r.Post("/purchases", handler.HandleRecordPurchase(svc.Purchases))
				r.Post("/purchases/{txId}/approve", handler.HandleApprovePurchase(svc.Purchases))

				r.Post("/notifications", handler.HandleSendNotification(svc.Notifications))

				r.Get("/cache/stats", handler.HandleGetCacheStats(svc.Users))
				r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)
				r.Post("/sse/broadcast", adminSSEHandler.HandleBroadcast)
				r.Get("/sse/stats", adminSSEHandler.HandleStats)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the event stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip probes, scrapes and static media
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") ||
			strings.HasPrefix(r.URL.Path, "/media/") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
