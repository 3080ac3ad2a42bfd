package persistence

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the storage connection. The storefront persists only the
// cart slot, so a local sqlite file is all the durability it needs.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the sqlite database at the given path and
// migrates the cart slot schema. Use ":memory:" for an ephemeral store.
func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cart storage: %w", err)
	}

	if err := db.AutoMigrate(&CartSlotModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cart storage: %w", err)
	}

	return &Database{DB: db}, nil
}

// Ping verifies the storage connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Close closes the underlying connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
