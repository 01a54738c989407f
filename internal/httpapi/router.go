// Package httpapi serves the record store to the form, table and map
// front-ends.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"winemap/internal/store"
)

// maxUploadSize bounds the body of an add request, image included. Larger
// bodies are cut off and answered with 413.
const maxUploadSize = 8 << 20

// multipartMemory is how much of a multipart body is kept in memory before
// parts spill to temporary files.
const multipartMemory = 1 << 20

// Handler holds the dependencies of the HTTP endpoints.
type Handler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewRouter builds the chi router. gatherer backs /metrics and may be nil.
func NewRouter(s *store.Store, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{store: s, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/types", h.listTypes)
		r.Get("/regions", h.listRegions)
		r.Get("/markers", h.listMarkers)

		r.Route("/wines", func(r chi.Router) {
			r.Get("/", h.listWines)
			r.Post("/", h.addWine)
			r.Delete("/{index}", h.deleteWine)
			r.Get("/{index}/image", h.wineImage)
		})
	})
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
