// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/slabdesk/slabdesk-backend/internal/config"
	"github.com/slabdesk/slabdesk-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.LogLevel == "silent" {
		logLevel = logger.Silent
	}

	// TranslateError lets callers match unique violations with
	// gorm.ErrDuplicatedKey instead of inspecting SQLSTATE 23505.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Contact{},
		&models.Seller{},
		&models.Event{},
		&models.GlobalAsset{},
		&models.UserAsset{},
		&models.Session{},
		&models.EvaluationAsset{},
		&models.CartEntry{},
		&models.PurchaseTransaction{},
		&models.Consignment{},
		&models.InviteCode{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// schemaIndexes holds all DDL applied after AutoMigrate. The unique
// purchase index is the database-level backstop for the rule that a
// user buys a given physical card at most once; the service-layer
// checks race without it.
var schemaIndexes = []string{
	// Session indexes
	"CREATE INDEX IF NOT EXISTS idx_buy_offers_user_created ON buy_offers(user_id, created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_buy_offers_user_archived ON buy_offers(user_id, archived)",
	"CREATE INDEX IF NOT EXISTS idx_buy_offers_event ON buy_offers(event_id)",

	// Asset movement indexes
	"CREATE INDEX IF NOT EXISTS idx_evaluation_assets_session ON evaluation_assets(session_id)",
	"CREATE INDEX IF NOT EXISTS idx_buy_list_cart_session ON buy_list_cart(session_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_purchase_transactions_user_asset_unique ON purchase_transactions(user_id, global_asset_id)",
	"CREATE INDEX IF NOT EXISTS idx_purchase_transactions_purchased_at ON purchase_transactions(purchased_at DESC)",

	// Contact indexes
	"CREATE INDEX IF NOT EXISTS idx_contacts_user_email ON contacts(user_id, email)",

	// Catalog search
	"CREATE INDEX IF NOT EXISTS idx_global_assets_search ON global_assets USING GIN(to_tsvector('english', title || ' ' || player_name || ' ' || set_name))",
}

func createIndexes(db *gorm.DB) error {
	for _, index := range schemaIndexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}
