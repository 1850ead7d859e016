package database

import (
	"fmt"

	"github.com/chalkboard-id/chalkboard-api/internal/config"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	appLogger "github.com/chalkboard-id/chalkboard-api/pkg/logger"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
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

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	appLogger.L().Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// Models lists every entity managed by auto-migration
func Models() []any {
	return []any{
		// Catalogue
		&entity.PricingPackage{},
		&entity.Table{},
		&entity.Staff{},
		&entity.FnbCategory{},
		&entity.FnbItem{},

		// Sessions and billing
		&entity.TableSession{},
		&entity.Payment{},
		&entity.FnbOrder{},
		&entity.FnbOrderItem{},

		// System entities
		&entity.SystemSetting{},
		&entity.User{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	appLogger.L().Info("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	appLogger.L().Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the admin account when configured and missing
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		appLogger.WithFields(logrus.Fields{"email": admin.Email}).Info("Admin user already exists")
		return nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}

	user := entity.User{
		Email:    admin.Email,
		Password: hashedPassword,
		Name:     name,
		Role:     enum.UserRoleAdmin,
		IsActive: true,
	}
	if err := db.Omit("Staff").Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	appLogger.WithFields(logrus.Fields{"email": admin.Email}).Info("Admin user created")
	return nil
}
