package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/23sarmiento78/BOLUSHOP/pkg/health"
	"github.com/23sarmiento78/BOLUSHOP/pkg/httpclient"
	pkgkafka "github.com/23sarmiento78/BOLUSHOP/pkg/kafka"

	"github.com/23sarmiento78/BOLUSHOP/internal/config"
	"github.com/23sarmiento78/BOLUSHOP/internal/event"
	handler "github.com/23sarmiento78/BOLUSHOP/internal/handler/http"
	"github.com/23sarmiento78/BOLUSHOP/internal/notifier"
	"github.com/23sarmiento78/BOLUSHOP/internal/payment"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository/jsonfile"
	"github.com/23sarmiento78/BOLUSHOP/internal/service"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure the data directory exists before the stores touch it.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	logger.Info("data directory ready", slog.String("path", cfg.DataDir))

	productRepo := jsonfile.NewProductRepository(cfg.DataDir)
	orderRepo := jsonfile.NewOrderRepository(cfg.DataDir)
	settingsRepo := jsonfile.NewSettingsRepository(cfg.DataDir)

	// Kafka is optional: without brokers the storefront runs standalone and
	// event publishing is a no-op.
	var producer *pkgkafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		producer = pkgkafka.NewProducer(kafkaCfg, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka disabled, events will not be published")
	}
	eventProducer := event.NewProducer(producer, logger)

	// Payment gateway: without an access token checkout runs against the
	// in-memory mock, which is what local development wants.
	var gateway payment.Gateway
	if cfg.MPAccessToken != "" {
		baseClient := httpclient.New(httpclient.DefaultConfig())
		cbClient := httpclient.NewCircuitBreakerClient(
			baseClient,
			httpclient.DefaultCircuitBreakerConfig("mercadopago"),
			logger,
		)
		gateway = payment.NewMercadoPagoGateway(cbClient, cfg.MPBaseURL, cfg.MPAccessToken, logger)
		logger.Info("mercadopago gateway initialized")
	} else {
		gateway = payment.NewMockGateway()
		logger.Warn("MP_ACCESS_TOKEN not set, using mock payment gateway")
	}

	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	mailer := notifier.New(notifier.NewLogSender(logger), settings.SiteName)

	catalogService := service.NewCatalogService(productRepo, settingsRepo, eventProducer, logger)
	checkoutService := service.NewCheckoutService(orderRepo, gateway, eventProducer, logger, cfg.SiteURL)
	orderService := service.NewOrderService(orderRepo, gateway, mailer, eventProducer, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("datadir", func(ctx context.Context) error {
		probe := filepath.Join(cfg.DataDir, ".healthcheck")
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			return fmt.Errorf("data dir not writable: %w", err)
		}
		return os.Remove(probe)
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:       catalogService,
		Checkout:      checkoutService,
		Orders:        orderService,
		Settings:      settingsService,
		Health:        healthHandler,
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
		WebhookSecret: cfg.MPWebhookSecret,
		MaxUploadMB:   cfg.MaxUploadMB,
		UploadsDir:    cfg.UploadsDir,
		SecureCookies: cfg.Environment != "development",
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: the HTTP server drains first so
// in-flight checkouts finish writing, then the Kafka producer flushes.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
