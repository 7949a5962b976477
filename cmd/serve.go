package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minicloud/portal/internal/catalog"
	"github.com/minicloud/portal/internal/config"
	"github.com/minicloud/portal/internal/docker"
	"github.com/minicloud/portal/internal/handler"
	"github.com/minicloud/portal/internal/logging"
	"github.com/minicloud/portal/internal/metrics"
	"github.com/minicloud/portal/internal/middleware"
	"github.com/minicloud/portal/internal/portainer"
	"github.com/minicloud/portal/internal/stacks"
	"github.com/minicloud/portal/internal/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP server (default command)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New(metrics.WithRuntimeCollectors())
	}

	svc, closeSource, err := newStackService(cfg, logger, m)
	if err != nil {
		return err
	}
	defer closeSource()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg, svc, m, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("portal starting", "addr", cfg.Addr, "source", cfg.Source, "mock", cfg.MockMode())
	return serve(ctx, srv, logger)
}

// serve runs srv until it fails or ctx is done, then drains in-flight
// requests for up to shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newStackService picks the stack source from cfg. The returned func
// releases the source and is always non-nil.
func newStackService(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*stacks.Service, func(), error) {
	var (
		source  stacks.Source
		closeFn = func() {}
	)

	switch {
	case cfg.Source == config.SourceDocker:
		client, err := docker.NewClient(cfg.DockerSocket, cfg.EndpointID)
		if err != nil {
			return nil, nil, err
		}
		source = client
		closeFn = func() {
			if err := client.Close(); err != nil {
				logger.Warn("close docker client", "err", err)
			}
		}
	case cfg.MockMode():
		logger.Warn("PORTAINER_API_TOKEN not set, serving demo stacks")
		source = stacks.MockSource{}
	default:
		source = portainer.NewClient(cfg.PortainerURL, cfg.APIToken, cfg.Timeout)
	}

	// A nil *Metrics must not end up as a non-nil interface value.
	var recorder stacks.FetchRecorder
	if m != nil {
		recorder = m
	}
	return stacks.NewService(source, cfg.MockMode(), logger, recorder), closeFn, nil
}

func newRouter(cfg *config.Config, svc *stacks.Service, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))
	if m != nil {
		r.Use(m.Middleware())
	}
	r.SetHTMLTemplate(web.MustTemplates())

	portalH := handler.NewPortalHandler(svc, catalog.NewResolver(cfg.LinkHost))
	r.GET("/", portalH.Index)
	r.GET("/healthz", handler.Health)

	// The JSON mirror is read-only and may be embedded by other dashboards.
	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{handler.SourceStateHeader, middleware.RequestIDHeader},
		AllowCredentials: false,
	}))
	api.GET("/stacks", portalH.Stacks)

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return r
}
