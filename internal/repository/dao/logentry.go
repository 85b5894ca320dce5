package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type LogEntry struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    uint   `gorm:"not null;index"`
	ObjectType string `gorm:"not null"`
	ObjectID   uint   `gorm:"not null;default:0"`
	ActionType string `gorm:"not null"`
	Data       string `gorm:"type:jsonb;not null;default:'{}'"`
	UserID     uint   `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

type LogEntryDAO struct {
	db *gorm.DB
}

func NewLogEntryDAO(db *gorm.DB) *LogEntryDAO {
	return &LogEntryDAO{
		db: db,
	}
}

func (d *LogEntryDAO) Insert(ctx context.Context, entry LogEntry) (LogEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return LogEntry{}, result.Error
	}

	return entry, nil
}

func (d *LogEntryDAO) FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]LogEntry, error) {
	var entries []LogEntry

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *LogEntryDAO) FindByObject(ctx context.Context, eventID uint, objectType string, objectID uint) ([]LogEntry, error) {
	var entries []LogEntry

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND object_type = ? AND object_id = ?", eventID, objectType, objectID).
		Order("id DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
