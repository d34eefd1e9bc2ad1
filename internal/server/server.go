package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/PixelFarm_Go/internal/autosave"
	"github.com/osse101/PixelFarm_Go/internal/building"
	"github.com/osse101/PixelFarm_Go/internal/catalog"
	"github.com/osse101/PixelFarm_Go/internal/database"
	"github.com/osse101/PixelFarm_Go/internal/economy"
	"github.com/osse101/PixelFarm_Go/internal/farm"
	"github.com/osse101/PixelFarm_Go/internal/handler"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/metrics"
	"github.com/osse101/PixelFarm_Go/internal/user"
)

// Options configures the HTTP surface
type Options struct {
	Port              int
	AllowedOrigin     string
	TrustedProxies    []string
	Version           string
	DisableRateLimits bool
}

// Services bundles the game services exposed as functions
type Services struct {
	User     user.Service
	Farm     farm.Service
	Economy  economy.Service
	Building building.Service
	Catalog  catalog.Service
	Autosave autosave.Service
}

type Server struct {
	httpServer *http.Server
	handler    http.Handler
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(CORSMiddleware(opts.AllowedOrigin))
	r.Use(SecurityHeadersMiddleware())
	if !opts.DisableRateLimits {
		r.Use(RateLimitMiddleware(opts.TrustedProxies, NewSuspiciousActivityDetector()))
	}
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	userHandler := handler.NewUserHandler(svc.User)
	farmHandler := handler.NewFarmHandler(svc.Farm)
	economyHandler := handler.NewEconomyHandler(svc.Economy)
	buildingHandler := handler.NewBuildingHandler(svc.Building)
	catalogHandler := handler.NewCatalogHandler(svc.Catalog)
	autosaveHandler := handler.NewAutosaveHandler(svc.Autosave)

	r.Route(FunctionsPrefix, func(r chi.Router) {
		r.Post("/create_new_user", userHandler.HandleCreateNewUser)
		r.Post("/update_user_data", userHandler.HandleUpdateUserData)
		r.Post("/get_game_state", userHandler.HandleGetGameState)

		r.Post("/plant_seed", farmHandler.HandlePlantSeed)
		r.Post("/harvest_crop", farmHandler.HandleHarvestCrop)
		r.Post("/unlock_plot", farmHandler.HandleUnlockPlot)
		r.Post("/get_farm_state", farmHandler.HandleGetFarmState)

		r.Post("/purchase_item", economyHandler.HandlePurchaseItem)
		r.Post("/sell_item", economyHandler.HandleSellItem)

		r.Post("/purchase_building", buildingHandler.HandlePurchaseBuilding)
		r.Post("/upgrade_building", buildingHandler.HandleUpgradeBuilding)
		r.Post("/get_user_buildings", buildingHandler.HandleGetUserBuildings)
		r.Post("/get_user_animals", buildingHandler.HandleGetUserAnimals)

		r.Get("/get_catalog", catalogHandler.HandleGetCatalog)
		r.Post("/get_catalog", catalogHandler.HandleGetCatalog)

		r.Post("/autosave", autosaveHandler.HandleAutosave)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	h := gzhttp.GzipHandler(r)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           h,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		handler: h,
		dbPool:  dbPool,
	}
}

// Handler exposes the fully wrapped router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.handler
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

// requestID reuses a caller-supplied X-Request-ID when it is a valid UUID
func requestID(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return logger.GenerateRequestID()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
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
