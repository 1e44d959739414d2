package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/application/service"
	"github.com/sangkips/kasir-receipt/internal/config"
	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	domainRepo "github.com/sangkips/kasir-receipt/internal/domain/repository"
	"github.com/sangkips/kasir-receipt/internal/infrastructure/database"
	"github.com/sangkips/kasir-receipt/internal/infrastructure/repository"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/handler"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/middleware"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/routes"
	"github.com/sangkips/kasir-receipt/pkg/format"
	"github.com/sangkips/kasir-receipt/pkg/printer"
	"github.com/sangkips/kasir-receipt/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := newLogger(&cfg.App)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Order history is optional; without a database only posted records
	// can be printed.
	var (
		orderRepo       domainRepo.OrderRepository
		idempotencyRepo = repository.NewMemoryIdempotencyRepository()
	)
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.WithError(err).Fatal("failed to run migrations")
		}
		if cfg.App.Env == "development" {
			if err := database.SeedSampleData(db); err != nil {
				log.WithError(err).Warn("failed to seed sample data")
			}
		}
		orderRepo = repository.NewOrderRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	middleware.StartIdempotencyCleanup(ctx, idempotencyRepo, middleware.IdempotencyCleanupInterval, log)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	receiptFormatter := newFormatter(&cfg.Receipt, cfg.Receipt.ReceiptFraction)
	reportFormatter := newFormatter(&cfg.Receipt, cfg.Receipt.ReportFraction)

	encoder, err := service.NewEncoder(cfg.Printer.Format, cfg.Printer.CharWidth)
	if err != nil {
		log.WithError(err).Fatal("invalid printer format")
	}

	labels := service.Labels{
		GeneralCustomer: cfg.Receipt.GeneralCustomer,
		DefaultPayment:  cfg.Receipt.DefaultPayment,
		Uncategorized:   cfg.Receipt.Uncategorized,
		UnknownMenu:     cfg.Receipt.UnknownMenu,
	}
	aggregator := service.NewAggregator(labels)

	renderer := service.NewReportRenderer(service.RendererConfig{
		Options: service.RendererOptions{
			Header: entity.ReceiptHeader{
				StoreName:    cfg.Receipt.StoreName,
				AddressLines: cfg.Receipt.AddressLines,
				LogoURL:      cfg.Receipt.LogoURL,
			},
			ReceiptTitle:     cfg.Receipt.ReceiptTitle,
			ReportTitle:      cfg.Receipt.ReportTitle,
			ReceiptFooter:    cfg.Receipt.ReceiptFooter,
			ReportFooter:     cfg.Receipt.ReportFooter,
			NoPaymentMarkers: cfg.Receipt.NoPaymentMarkers,
		},
		Labels:           labels,
		Aggregator:       aggregator,
		ReportFormatter:  reportFormatter,
		ReceiptFormatter: receiptFormatter,
		Encoder:          encoder,
		Logger:           log,
	})

	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
		cfg.Printer.Timeout,
	)
	if err != nil {
		log.WithError(err).Warn("failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	printerService := service.NewPrinterService(thermalPrinter, renderer, cfg.Printer.Type, cfg.Printer.Format, cfg.Printer.Timeout, log)
	reportService := service.NewReportService(orderRepo, aggregator, printerService)

	handlers := &routes.Handlers{
		Printer: handler.NewPrinterHandler(printerService),
		Report:  handler.NewReportHandler(reportService, printerService, reportFormatter.Location()),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{
		"port":    port,
		"env":     cfg.App.Env,
		"printer": cfg.Printer.Type,
		"format":  cfg.Printer.Format,
	}).Infof("starting %s", cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func newLogger(cfg *config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.Env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func newFormatter(cfg *config.ReceiptConfig, fraction string) *format.Formatter {
	return format.New(format.Options{
		Locale:         cfg.Locale,
		Timezone:       cfg.Timezone,
		CurrencySymbol: cfg.CurrencySymbol,
		Fraction:       format.ParseFractionPolicy(fraction),
	})
}
