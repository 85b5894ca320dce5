package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// The ticketing platform owns these tables. This service reads them and
// never mutates them outside of test fixtures.

type Event struct {
	ID            uint   `gorm:"primaryKey"`
	OrganizerSlug string `gorm:"not null;uniqueIndex:idx_events_organizer_slug"`
	Slug          string `gorm:"not null;uniqueIndex:idx_events_organizer_slug"`
	Name          string `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Order struct {
	Code      string `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	Email     string
	Status    string `gorm:"not null"`
	CreatedAt time.Time
}

type Item struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Admission bool   `gorm:"not null;default:false"`
}

type OrderPosition struct {
	ID            uint   `gorm:"primaryKey"`
	OrderCode     string `gorm:"not null;index"`
	ItemID        uint   `gorm:"not null"`
	Item          Item   `gorm:"foreignKey:ItemID"`
	AttendeeName  string
	AttendeeEmail string
	Canceled      bool `gorm:"not null;default:false"`
}

type Question struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    uint   `gorm:"not null;uniqueIndex:idx_questions_event_identifier"`
	Identifier string `gorm:"not null;uniqueIndex:idx_questions_event_identifier"`
	Text       string
}

type QuestionAnswer struct {
	ID         uint `gorm:"primaryKey"`
	PositionID uint `gorm:"not null;index"`
	QuestionID uint `gorm:"not null;index"`
	Answer     string
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

func (d *OrderDAO) FindEventBySlugs(ctx context.Context, organizerSlug, eventSlug string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Where("organizer_slug = ? AND slug = ?", organizerSlug, eventSlug).
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *OrderDAO) FindOrderByCode(ctx context.Context, eventID uint, code string) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND code = ?", eventID, code).
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindPositionsForOrders(ctx context.Context, orderCodes []string) ([]OrderPosition, error) {
	var positions []OrderPosition

	if len(orderCodes) == 0 {
		return positions, nil
	}

	result := d.db.WithContext(ctx).
		Preload("Item").
		Where("order_code IN ?", orderCodes).
		Find(&positions)
	if result.Error != nil {
		return nil, result.Error
	}

	return positions, nil
}

func (d *OrderDAO) FindQuestionByIdentifier(ctx context.Context, eventID uint, identifier string) (Question, error) {
	var question Question

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND identifier = ?", eventID, identifier).
		First(&question)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Question{}, ErrQuestionNotFound
		}

		return Question{}, result.Error
	}

	return question, nil
}

// FindAnswers returns the answer per position for one question.
func (d *OrderDAO) FindAnswers(ctx context.Context, positionIDs []uint, questionID uint) (map[uint]string, error) {
	answers := make(map[uint]string)

	if len(positionIDs) == 0 {
		return answers, nil
	}

	var rows []QuestionAnswer
	result := d.db.WithContext(ctx).
		Where("position_id IN ? AND question_id = ?", positionIDs, questionID).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		answers[row.PositionID] = row.Answer
	}

	return answers, nil
}
