package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notification-dispatch-service/internal/cleaner"
	"notification-dispatch-service/internal/platform/config"
	"notification-dispatch-service/internal/platform/logging"

	dispatchDelivery "notification-dispatch-service/internal/dispatch/adapters/delivery"
	dispatchHttp "notification-dispatch-service/internal/dispatch/adapters/http/fiber"
	dispatchMetrics "notification-dispatch-service/internal/dispatch/adapters/otelmetrics"
	dispatchRepoPg "notification-dispatch-service/internal/dispatch/adapters/postgres"
	dispatchTemplate "notification-dispatch-service/internal/dispatch/adapters/template"
	dispatchUsecase "notification-dispatch-service/internal/dispatch/core/usecase"

	historyHttp "notification-dispatch-service/internal/history/adapters/http/fiber"
	historyRepoPg "notification-dispatch-service/internal/history/adapters/postgres"
	historyUsecase "notification-dispatch-service/internal/history/core/usecase"

	recipientsDirectory "notification-dispatch-service/internal/recipients/adapters/directory"
	recipientsRepoPg "notification-dispatch-service/internal/recipients/adapters/postgres"
	recipientsUsecase "notification-dispatch-service/internal/recipients/core/usecase"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "notification-dispatch-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fallback := logging.New("info", false)
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Console)

	// DB connection
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open postgres")
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping postgres")
	}

	// Adapter-level DB wrappers
	historyDB := dispatchRepoPg.NewSQLDB(db)
	subscriberDB := recipientsRepoPg.NewSQLDB(db)
	historyReadDB := historyRepoPg.NewSQLDB(db)

	// Repositories
	historyRepository := dispatchRepoPg.NewHistoryRepository(historyDB)
	subscriberRepository := recipientsRepoPg.NewSubscriberRepository(subscriberDB)
	historyReader := historyRepoPg.NewHistoryReader(historyReadDB)

	// Outbound clients
	directoryClient := recipientsDirectory.NewClient(recipientsDirectory.Config{
		BaseURL: cfg.Directory.BaseURL,
		Timeout: cfg.Directory.Timeout.Std(),
	})
	deliveryClient := dispatchDelivery.NewClient(dispatchDelivery.Config{
		URL:        cfg.Delivery.URL,
		APIToken:   cfg.Delivery.APIToken,
		ClientID:   cfg.Delivery.ClientID,
		Env:        cfg.Delivery.Env,
		Timeout:    cfg.Delivery.Timeout.Std(),
		RatePerSec: cfg.Delivery.RatePerSec,
	}, historyRepository)

	// Usecases
	resolveUC := recipientsUsecase.NewResolveRecipientsUseCase(directoryClient, cfg.Directory.PageSize)
	filterUC := recipientsUsecase.NewFilterRecipientsUseCase()
	dispatchUC := dispatchUsecase.NewDispatchNotificationUseCase(
		dispatchTemplate.NewRenderer(),
		deliveryClient,
		dispatchMetrics.NewRecorder(),
		cfg.Features.AddressByEmail,
		log,
	)
	sendUC := dispatchUsecase.NewSendNotificationUseCase(resolveUC, filterUC, dispatchUC, subscriberRepository)
	getHistoryUC := historyUsecase.NewGetHistoryUseCase(historyReader)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	// notifications endpoints
	notificationHandler := dispatchHttp.NewNotificationHandler(sendUC)
	app.Post("/notifications", notificationHandler.SendNotification)

	// history endpoints
	historyHandler := historyHttp.NewHistoryHandler(getHistoryUC)
	app.Get("/history", historyHandler.GetHistory)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// History retention job
	historyCleaner := cleaner.New(historyRepository, cleaner.Config{
		Schedule:  cfg.Cleaner.Schedule,
		Retention: cfg.Cleaner.Retention.Std(),
	}, log)
	if err := historyCleaner.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start history cleaner")
	}

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Address); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("address", cfg.Server.Address).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down")

	historyCleaner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}
