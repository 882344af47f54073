// Package database persists the crib's items, movements and alerts in
// SQLite. It is a collaborator of the core: the ledger and aggregator
// hand it applied records, and at startup it can hand the catalog back.
package database

import (
	"fmt"
	"time"

	"outillage/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store wraps the gorm connection.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database and migrates the schema.
func Open(dbPath string, logMode bool) (*Store, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.LogMode(logMode)
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.ItemRecord{},
		&models.Movement{},
		&models.Alert{},
	).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SeedItems inserts the given items when the item table is empty, so the
// seed catalog only applies on first run.
func (s *Store) SeedItems(items []models.ItemRecord) error {
	var count int64
	s.db.Model(&models.ItemRecord{}).Count(&count)
	if count > 0 {
		return nil
	}

	for _, item := range items {
		record := item
		record.ID = 0
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to seed item %s: %w", item.Mabic, err)
		}
	}
	return nil
}

// LoadItems returns all persisted items in insertion order.
func (s *Store) LoadItems() ([]models.ItemRecord, error) {
	var items []models.ItemRecord
	if err := s.db.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	return items, nil
}

// SaveMovement appends a movement record. Movements are immutable, so
// this is always an insert.
func (s *Store) SaveMovement(m models.Movement) error {
	m.ID = 0
	return s.db.Create(&m).Error
}

// SaveItem upserts an item by its MABIC.
func (s *Store) SaveItem(item models.ItemRecord) error {
	var existing models.ItemRecord
	if s.db.Where("mabic = ?", item.Mabic).First(&existing).RecordNotFound() {
		item.ID = 0
		return s.db.Create(&item).Error
	}
	item.ID = existing.ID
	return s.db.Save(&item).Error
}

// SaveAlert upserts an alert by its alert id, so status transitions
// overwrite the stored row.
func (s *Store) SaveAlert(a models.Alert) error {
	var existing models.Alert
	if s.db.Where("alert_id = ?", a.AlertID).First(&existing).RecordNotFound() {
		a.ID = 0
		return s.db.Create(&a).Error
	}
	a.ID = existing.ID
	return s.db.Save(&a).Error
}
