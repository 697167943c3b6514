package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	adminhandler "github.com/de-tools/maturity-atlas/pkg/handlers/admin"
	analyticshandler "github.com/de-tools/maturity-atlas/pkg/handlers/analytics"
	assessmenthandler "github.com/de-tools/maturity-atlas/pkg/handlers/assessment"
	contenthandler "github.com/de-tools/maturity-atlas/pkg/handlers/content"
	frameworkhandler "github.com/de-tools/maturity-atlas/pkg/handlers/framework"
	"github.com/de-tools/maturity-atlas/pkg/metrics"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	atlasmiddleware "github.com/de-tools/maturity-atlas/pkg/server/middleware"
	"github.com/de-tools/maturity-atlas/pkg/services/admin"
	"github.com/de-tools/maturity-atlas/pkg/services/assessment"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/services/content"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Tracker interface {
	Track(ctx context.Context, e domain.Event) bool
}

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Assessments assessment.Service
	Content     content.Service
	Benchmarks  benchmark.Source
	Controls    *controls.Matrix
	Sessions    *admin.Sessions
	Tracker     Tracker
	Metrics     *metrics.Metrics
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	if deps.Sessions == nil {
		deps.Sessions = admin.NewSessions("", 0)
	}

	assessmentHandler := assessmenthandler.NewHandler(deps.Assessments, deps.Tracker, deps.Metrics)
	frameworkHandler := frameworkhandler.NewHandler(deps.Benchmarks, deps.Controls)
	contentHandler := contenthandler.NewHandler(deps.Content, deps.Tracker)
	adminHandler := adminhandler.NewHandler(deps.Sessions, deps.Benchmarks)
	analyticsHandler := analyticshandler.NewHandler(deps.Tracker)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(atlasmiddleware.Logger(&deps.Logger))
	if deps.Metrics != nil {
		router.Use(atlasmiddleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.Recoverer)

	router.Get("/", contentHandler.Index)
	router.Get("/pages/{slug}", contentHandler.Page)
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/framework", frameworkHandler.Framework)
		r.Get("/controls", frameworkHandler.Controls)

		r.Post("/assessments", assessmentHandler.Submit)
		r.Get("/assessments/{id}", assessmentHandler.Get)
		r.Get("/assessments/{id}/chart", assessmentHandler.Chart)
		r.Get("/assessments/{id}/export.csv", assessmentHandler.ExportCSV)
		r.Get("/assessments/{id}/export.pdf", assessmentHandler.ExportPDF)

		r.Post("/analytics/events", analyticsHandler.TrackEvent)

		r.Get("/content", contentHandler.List)
		r.Get("/content/{slug}", contentHandler.Get)

		r.Post("/admin/login", adminHandler.Login)
		r.Post("/admin/logout", adminHandler.Logout)
		r.Group(func(r chi.Router) {
			r.Use(atlasmiddleware.RequireAdmin(deps.Sessions))
			r.Get("/admin/assessments", assessmentHandler.List)
			r.Get("/admin/content", contentHandler.AdminList)
			r.Put("/admin/content/{slug}", contentHandler.Save)
			r.Delete("/admin/content/{slug}", contentHandler.Delete)
			r.Put("/admin/benchmarks/{domain}", adminHandler.SetBenchmark)
			r.Delete("/admin/benchmarks/{domain}", adminHandler.ClearBenchmark)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
