package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/api/handlers"
	"github.com/hunmap/roadnet/api/middleware"
	"github.com/hunmap/roadnet/service"
	"github.com/hunmap/roadnet/settings"
)

// Start starts the API server with the given configuration and query
// service. It sets up the router, listens for incoming HTTP requests on the
// configured port and shuts down gracefully on a stop signal.
func Start(config settings.Config, svc *service.Service) {
	router := createRouter(config, svc)
	server := &http.Server{Addr: fmt.Sprintf(":%v", config.Server.Port), Handler: router}
	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		log.Info("Stop signal received, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 5*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}

		log.Info("Server stopped successfully")
		serverStopCtx()
	}()

	log.Infof("Road network API started, running on port %v", config.Server.Port)

	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	// Wait for server context to be stopped
	<-serverCtx.Done()
}

// createRouter creates and configures the router for the server.
// It sets up the necessary middleware and routes for handling API requests.
func createRouter(config settings.Config, svc *service.Service) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.Logger("router", log.StandardLogger(), log.DebugLevel))
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Throttle(config.Server.MaxConcurrentRequests))
	router.Use(chimiddleware.Timeout(time.Duration(config.Server.Timeout) * time.Second))
	router.Use(chimiddleware.Compress(5, "application/json"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.Server.CORS.AllowOrigins,
		AllowedMethods:   config.Server.CORS.AllowMethods,
		AllowedHeaders:   config.Server.CORS.AllowHeaders,
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           600,
	}))
	router.NotFound(handlers.NotFoundHandler)

	humaConfig := createHumaConfig()
	api := humachi.New(router, humaConfig)
	registerRoutes(api, svc)

	return router
}

func createHumaConfig() huma.Config {
	humaConfig := huma.DefaultConfig("Road Network API", "1.0.0")
	humaConfig.CreateHooks = nil
	humaConfig.Info.Description = "REST API over a national road network dataset. Roads and points of interest are served from a spatially indexed DuckDB store built by the ingest command; the API provides bounding box queries, name search, statistics and road details for a map front end."

	return humaConfig
}

func registerRoutes(api huma.API, svc *service.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Status",
		Description: "Get the status of the server and the store.",
	}, handlers.StatusHandler(svc, time.Now()))

	huma.Register(api, huma.Operation{
		OperationID: "get-roads",
		Method:      http.MethodGet,
		Path:        "/api/roads",
		Summary:     "Roads in bounding box",
		Description: "Get roads with at least one associated point inside the bounding box, optionally filtered by road subtype codes. Capped at 5000 results.",
	}, handlers.RoadsHandler(svc))

	huma.Register(api, huma.Operation{
		OperationID: "get-points",
		Method:      http.MethodGet,
		Path:        "/api/points",
		Summary:     "Points in bounding box",
		Description: "Get points of interest inside the bounding box, optionally filtered by subtype codes. Capped at 10000 results.",
	}, handlers.PointsHandler(svc))

	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search locations by name",
		Description: "Case-insensitive substring search over location names that resolve to a point with valid geometry.",
	}, handlers.SearchHandler(svc))

	huma.Register(api, huma.Operation{
		OperationID: "get-statistics",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Dataset statistics",
		Description: "Totals, road and point type breakdowns, overall bounding box and map center.",
	}, handlers.StatisticsHandler(svc))

	huma.Register(api, huma.Operation{
		OperationID: "get-motorways",
		Method:      http.MethodGet,
		Path:        "/api/motorways",
		Summary:     "List motorways",
		Description: "All road numbers starting with M and their segment counts.",
	}, handlers.MotorwaysHandler(svc))

	huma.Register(api, huma.Operation{
		OperationID: "get-road",
		Method:      http.MethodGet,
		Path:        "/api/road/{lcd}",
		Summary:     "Road details",
		Description: "Full detail record of a single road by its local code.",
	}, handlers.RoadHandler(svc))
}
