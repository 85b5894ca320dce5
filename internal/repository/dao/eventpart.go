package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventPartNotFound   = errors.New("event part not found")
	ErrDuplicateAssignment = errors.New("order already has a part of this type")
)

type EventPart struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:jsonb;not null;default:'{}'"`
	Category    string `gorm:"not null;default:''"`
	Capacity    int    `gorm:"not null;default:0"`
	Type        string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventPartAssignment links an order to one part. The unique index on
// (order_code, part_type) makes one-part-per-type a database invariant.
type EventPartAssignment struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"not null;index"`
	OrderCode   string `gorm:"not null;uniqueIndex:idx_assignments_order_type"`
	PartType    string `gorm:"not null;uniqueIndex:idx_assignments_order_type"`
	EventPartID uint   `gorm:"not null;index"`
	CreatedAt   time.Time
}

type EventPartDAO struct {
	db *gorm.DB
}

func NewEventPartDAO(db *gorm.DB) *EventPartDAO {
	return &EventPartDAO{
		db: db,
	}
}

// InsertWithLog creates the part and its audit entry in one transaction.
func (d *EventPartDAO) InsertWithLog(ctx context.Context, part EventPart, entry LogEntry) (EventPart, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&part).Error; err != nil {
			return err
		}

		entry.ObjectID = part.ID
		return tx.Create(&entry).Error
	})
	if err != nil {
		return EventPart{}, err
	}

	return part, nil
}

// UpdateWithLog saves the part and its audit entry in one transaction.
func (d *EventPartDAO) UpdateWithLog(ctx context.Context, part EventPart, entry LogEntry) (EventPart, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&part).Error; err != nil {
			return err
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return EventPart{}, err
	}

	return part, nil
}

// DeleteWithLog writes the audit entry, removes the part's assignments and
// deletes the part, all in one transaction.
func (d *EventPartDAO) DeleteWithLog(ctx context.Context, part EventPart, entry LogEntry) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Where("event_part_id = ?", part.ID).
			Delete(&EventPartAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&EventPart{}, part.ID).Error
	})
}

func (d *EventPartDAO) FindByID(ctx context.Context, eventID, id uint) (EventPart, error) {
	var part EventPart

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&part, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventPart{}, ErrEventPartNotFound
		}

		return EventPart{}, result.Error
	}

	return part, nil
}

func (d *EventPartDAO) FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]EventPart, error) {
	var parts []EventPart

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&parts)
	if result.Error != nil {
		return nil, result.Error
	}

	return parts, nil
}

func (d *EventPartDAO) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&EventPart{}).
		Where("event_id = ?", eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventPartDAO) FindByEventAndType(ctx context.Context, eventID uint, partType string) ([]EventPart, error) {
	var parts []EventPart

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND type = ?", eventID, partType).
		Order("id").
		Find(&parts)
	if result.Error != nil {
		return nil, result.Error
	}

	return parts, nil
}

// ReplaceAssignments drops every assignment of the order and inserts the
// given picks (part type -> part id). Destructive replace, one transaction.
func (d *EventPartDAO) ReplaceAssignments(ctx context.Context, eventID uint, orderCode string, picks map[string]uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_code = ?", orderCode).
			Delete(&EventPartAssignment{}).Error; err != nil {
			return err
		}

		for partType, partID := range picks {
			assignment := EventPartAssignment{
				EventID:     eventID,
				OrderCode:   orderCode,
				PartType:    partType,
				EventPartID: partID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateAssignment
		}

		return err
	}

	return nil
}

// FindAssignedParts returns the parts linked to an order, keyed by type.
func (d *EventPartDAO) FindAssignedParts(ctx context.Context, orderCode string) (map[string]EventPart, error) {
	var assignments []EventPartAssignment

	result := d.db.WithContext(ctx).
		Where("order_code = ?", orderCode).
		Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	parts := make(map[string]EventPart, len(assignments))
	for _, a := range assignments {
		var part EventPart
		if err := d.db.WithContext(ctx).First(&part, a.EventPartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return nil, err
		}
		parts[a.PartType] = part
	}

	return parts, nil
}

// FindAssignedOrders returns all orders linked to a part.
func (d *EventPartDAO) FindAssignedOrders(ctx context.Context, partID uint) ([]Order, error) {
	var orders []Order

	result := d.db.WithContext(ctx).
		Joins("JOIN event_part_assignments ON event_part_assignments.order_code = orders.code").
		Where("event_part_assignments.event_part_id = ?", partID).
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}
