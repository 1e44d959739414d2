package database

import (
	"fmt"
	"time"

	"github.com/sangkips/kasir-receipt/internal/config"
	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/internal/infrastructure/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Reports are read occasionally; a small pool is enough.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logrus.WithField("host", cfg.Host).Info("connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate creates the order history tables.
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("running database migrations")

	err := db.AutoMigrate(
		&repository.OrderRecord{},
		&repository.OrderDetailRecord{},
		&repository.CartLineRecord{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("database migrations completed")
	return nil
}

// SeedSampleData inserts one paid order and two open cart lines into an
// empty database so a fresh development setup has something to print.
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&repository.OrderRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	order := repository.OrderRecord{
		ID:            "TRX-SAMPLE-001",
		CreatedAt:     now,
		CustomerName:  "Ayu",
		PaymentMethod: "Tunai",
		Paid:          70000,
		Total:         65000,
		Details: []repository.OrderDetailRecord{
			{MenuName: "Latte", Category: "Kopi", Quantity: 2, UnitPrice: 25000, TotalPrice: 50000},
			{MenuName: "Croissant", Category: "Pastry", Quantity: 1, UnitPrice: 15000, TotalPrice: 15000},
		},
	}
	cart := []repository.CartLineRecord{
		{CustomerName: "Ayu", MenuName: "Teh", Price: 10000, Quantity: 2, CreatedAt: now},
		{CustomerName: "Budi", MenuName: "Kopi", Price: 15000, Quantity: 2, Note: "less sugar", CreatedAt: now},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Create(&cart).Error; err != nil {
			return err
		}
		logrus.Info("seeded sample order history")
		return nil
	})
}
