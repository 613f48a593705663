package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// Slot is the single table behind the gorm backend: one row per collection.
type Slot struct {
	Key       string `gorm:"primaryKey;column:key"`
	Data      []byte `gorm:"column:data"`
	UpdatedAt time.Time
}

func (Slot) TableName() string {
	return "slots"
}

// GormBackend persists slots through gorm, with sqlite for process-local
// files and postgres for shared development databases.
type GormBackend struct {
	db *gorm.DB
}

func OpenGorm(driver, source string) (*GormBackend, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(source)
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("migrate slots table: %w", err)
	}

	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Load(key string) ([]byte, error) {
	var slot Slot
	err := g.db.First(&slot, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", key, err)
	}
	return slot.Data, nil
}

func (g *GormBackend) Save(key string, data []byte) error {
	slot := Slot{Key: key, Data: data, UpdatedAt: time.Now()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}

// Open builds a Backend for the configured driver.
func Open(driver, source string) (Backend, error) {
	if driver == "memory" {
		return NewMemory(), nil
	}
	return OpenGorm(driver, source)
}
