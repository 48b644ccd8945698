package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/campsite-reservation/config"
	"github.com/Eursukkul/campsite-reservation/internal/consumer"
	"github.com/Eursukkul/campsite-reservation/internal/handler"
	"github.com/Eursukkul/campsite-reservation/internal/httputil"
	"github.com/Eursukkul/campsite-reservation/internal/logging"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/notify"
	"github.com/Eursukkul/campsite-reservation/internal/payment"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/Eursukkul/campsite-reservation/pkg/cache"
	"github.com/Eursukkul/campsite-reservation/pkg/database"
	"github.com/Eursukkul/campsite-reservation/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	if err := database.Migrate(db); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	// Owner notifications
	var notifier notify.Notifier = notify.Nop{}
	switch cfg.NotifyTransport {
	case config.TransportRabbitMQ:
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			fatal(log, "failed to connect to RabbitMQ", err)
		}
		defer publisher.Close()
		notifier = notify.NewRabbitNotifier(publisher)
	case config.TransportKafka:
		kn := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kn.Close()
		notifier = kn
	}
	alerts := notify.NewDispatcher(notifier, log, cfg.NotifyTimeout)

	// Active-site cache
	var siteCache service.SiteCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			fatal(log, "failed to connect to Redis", err)
		}
		defer client.Close()
		siteCache = cache.NewJSONCache(client, "campsite:", cfg.SiteCacheTTL)
	}

	// Repositories
	tx := repository.NewTransactor(db)
	siteRepo := repository.NewSiteRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	gatewayRepo := repository.NewPaymentGatewayRepository(db)
	bankAccountRepo := repository.NewBankAccountRepository(db)

	// Payment methods
	var checkout payment.CheckoutClient
	if cfg.StripeSecretKey != "" {
		checkout = payment.NewStripeClient(cfg.StripeSecretKey, cfg.StripeAPIBase, cfg.GatewayTimeout)
	}
	router := payment.NewRouter(
		payment.NewStripeHandler(checkout, cfg.Currency),
		payment.NewNaverPayHandler(),
		payment.NewKakaoPayHandler(),
		payment.NewTossHandler(),
		payment.NewBankTransferHandler(bankAccountRepo, settingRepo),
	)

	// Services
	siteSvc := service.NewSiteService(siteRepo, siteCache, log)
	availabilitySvc := service.NewAvailabilityService(reservationRepo, siteRepo)
	reservationSvc := service.NewReservationService(tx, reservationRepo, siteRepo, alerts, log)
	paymentSvc := service.NewPaymentService(tx, reservationRepo, gatewayRepo, router, alerts, log)
	inquirySvc := service.NewInquiryService(inquiryRepo, alerts, log)
	dashboardSvc := service.NewDashboardService(reservationRepo, siteRepo, inquiryRepo, userRepo)
	gatewaySvc := service.NewGatewaySettingService(gatewayRepo)
	bankAccountSvc := service.NewBankAccountService(bankAccountRepo)
	settingSvc := service.NewSettingService(settingRepo)
	userSvc := service.NewUserService(userRepo)

	// Payment callbacks relayed by the gateway bridge
	var (
		mqConsumer   *rabbitmq.Consumer
		consumerDone <-chan struct{}
	)
	if cfg.RabbitURL != "" {
		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.PaymentQueue, rabbitmq.PaymentRoutingKey)
		if err != nil {
			fatal(log, "failed to connect to RabbitMQ", err)
		}

		msgs, err := mqConsumer.Consume()
		if err != nil {
			fatal(log, "failed to start consuming", err)
		}
		consumerDone = consumer.NewPaymentConsumer(paymentSvc, log).Start(msgs)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = httputil.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(httputil.DefaultErrorMapper(), log)
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "campsite-reservation"})
	})

	api := e.Group("/api/v1", middleware.Authenticate(cfg.JWTSecret, userSvc, log)...)
	handler.NewSiteHandler(siteSvc).RegisterRoutes(api)
	handler.NewReservationHandler(reservationSvc, availabilitySvc).RegisterRoutes(api)
	handler.NewInquiryHandler(inquirySvc).RegisterRoutes(api)
	handler.NewDashboardHandler(dashboardSvc).RegisterRoutes(api)
	handler.NewPaymentHandler(paymentSvc, cfg.PublicOrigin).RegisterRoutes(api)
	handler.NewConfigHandler(gatewaySvc, bankAccountSvc, settingSvc).RegisterRoutes(api)

	go func() {
		log.Info("campsite reservation service starting", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server stopped", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if mqConsumer != nil {
		// Closing ends the delivery stream. An unacknowledged message is
		// redelivered, and confirmations are idempotent.
		mqConsumer.Close()
		select {
		case <-consumerDone:
		case <-shutdownCtx.Done():
		}
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
