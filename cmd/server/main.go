package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aurex-exteriors/site/internal/content"
	"github.com/aurex-exteriors/site/internal/http/health"
	"github.com/aurex-exteriors/site/internal/http/v1/routes"
	"github.com/aurex-exteriors/site/internal/platform/config"
	"github.com/aurex-exteriors/site/internal/platform/logging"
	appmiddleware "github.com/aurex-exteriors/site/internal/platform/middleware"
	"github.com/aurex-exteriors/site/internal/platform/respond"
	"github.com/aurex-exteriors/site/internal/service/backend"
	formsvc "github.com/aurex-exteriors/site/internal/service/forms"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const sweepInterval = time.Minute

func main() {
	defer func() {
		if err := logging.Sync(); err != nil {
			logging.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := logging.Err(); err != nil {
		logging.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.LogFatal(context.Background(), "invalid configuration", err)
	}
	company, err := content.LoadDefaults(cfg.CompanyDefaultsFile)
	if err != nil {
		logging.LogFatal(context.Background(), "company defaults", err, zap.String("path", cfg.CompanyDefaultsFile))
	}

	client := backend.NewClient(cfg.BackendURL)
	registry := formsvc.NewRegistry(client,
		formsvc.WithIdleTTL(cfg.FormIdleTTL),
		formsvc.WithMaxOpen(cfg.FormMaxOpen),
		formsvc.WithRevertDelay(cfg.FormSuccessReset),
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(sweepCtx, sweepInterval)

	router := newRouter(cfg, client, registry, company)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// Submissions with photos wait up to 30s on the backend.
		WriteTimeout:   45 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		logging.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.BackendURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		logging.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		logging.LogInfo(context.Background(), "shutdown signal received")
	}
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.LogError(ctx, "server shutdown error", err)
	}
	logging.LogInfo(context.Background(), "server exited")
}

func newRouter(cfg *config.Config, client backend.Service, forms formsvc.Service, company content.Company) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		chimiddleware.RealIP,
		// Photo uploads are the largest bodies accepted.
		chimiddleware.RequestSize(cfg.RequestMaxBytes),
		logging.RequestLogger(),
		logging.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)
	router.Get("/ready", health.Ready(client))

	humaCfg := huma.DefaultConfig("Aurex Exteriors Site API", Version)
	humaCfg.DocsPath = "/api-docs"
	api := humachi.New(router, humaCfg)
	addCBORContent(api)

	routes.Register(api, forms, client, company, cfg.RequestMaxBytes)
	return router
}

// addCBORContent advertises application/cbor wherever the OpenAPI document lists JSON.
func addCBORContent(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}
