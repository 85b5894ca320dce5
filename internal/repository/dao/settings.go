package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// EventSetting is one key/value override for an event. Missing keys fall
// back to the service-level defaults.
type EventSetting struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;uniqueIndex:idx_settings_event_key"`
	Key       string `gorm:"not null;uniqueIndex:idx_settings_event_key"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

type SettingsDAO struct {
	db *gorm.DB
}

func NewSettingsDAO(db *gorm.DB) *SettingsDAO {
	return &SettingsDAO{
		db: db,
	}
}

func (d *SettingsDAO) FindByEvent(ctx context.Context, eventID uint) ([]EventSetting, error) {
	var settings []EventSetting

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// SaveAllWithLog upserts every key and writes the audit entry in one
// transaction.
func (d *SettingsDAO) SaveAllWithLog(ctx context.Context, eventID uint, values map[string]string, entry LogEntry) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			var existing EventSetting
			err := tx.Where("event_id = ? AND key = ?", eventID, key).First(&existing).Error
			switch {
			case err == nil:
				existing.Value = value
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				setting := EventSetting{EventID: eventID, Key: key, Value: value}
				if err := tx.Create(&setting).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return tx.Create(&entry).Error
	})
}
