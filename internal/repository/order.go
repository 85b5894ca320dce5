package repository

import (
	"context"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrOrderNotFound    = dao.ErrOrderNotFound
	ErrQuestionNotFound = dao.ErrQuestionNotFound
)

type OrderDAO interface {
	FindEventBySlugs(ctx context.Context, organizerSlug, eventSlug string) (dao.Event, error)
	FindOrderByCode(ctx context.Context, eventID uint, code string) (dao.Order, error)
	FindPositionsForOrders(ctx context.Context, orderCodes []string) ([]dao.OrderPosition, error)
	FindQuestionByIdentifier(ctx context.Context, eventID uint, identifier string) (dao.Question, error)
	FindAnswers(ctx context.Context, positionIDs []uint, questionID uint) (map[uint]string, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) positionDaoToDomain(p dao.OrderPosition) domain.OrderPosition {
	return domain.OrderPosition{
		ID:        p.ID,
		OrderCode: p.OrderCode,
		ItemID:    p.ItemID,
		Item: domain.Item{
			ID:        p.Item.ID,
			EventID:   p.Item.EventID,
			Name:      p.Item.Name,
			Admission: p.Item.Admission,
		},
		AttendeeName:  p.AttendeeName,
		AttendeeEmail: p.AttendeeEmail,
		Canceled:      p.Canceled,
	}
}

func (r *OrderRepository) FindEventBySlugs(ctx context.Context, organizerSlug, eventSlug string) (domain.Event, error) {
	event, err := r.dao.FindEventBySlugs(ctx, organizerSlug, eventSlug)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindEventBySlugs -> %w", err)
	}

	return domain.Event{
		ID:            event.ID,
		OrganizerSlug: event.OrganizerSlug,
		Slug:          event.Slug,
		Name:          event.Name,
	}, nil
}

func (r *OrderRepository) FindOrderByCode(ctx context.Context, eventID uint, code string) (domain.Order, error) {
	order, err := r.dao.FindOrderByCode(ctx, eventID, code)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindOrderByCode -> %w", err)
	}

	return domain.Order{
		Code:      order.Code,
		EventID:   order.EventID,
		Email:     order.Email,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}, nil
}

func (r *OrderRepository) FindPositionsForOrders(ctx context.Context, orderCodes []string) ([]domain.OrderPosition, error) {
	positions, err := r.dao.FindPositionsForOrders(ctx, orderCodes)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPositionsForOrders -> %w", err)
	}

	converted := make([]domain.OrderPosition, len(positions))
	for i, position := range positions {
		converted[i] = r.positionDaoToDomain(position)
	}

	return converted, nil
}

func (r *OrderRepository) FindQuestionByIdentifier(ctx context.Context, eventID uint, identifier string) (domain.Question, error) {
	question, err := r.dao.FindQuestionByIdentifier(ctx, eventID, identifier)
	if err != nil {
		return domain.Question{}, fmt.Errorf("r.dao.FindQuestionByIdentifier -> %w", err)
	}

	return domain.Question{
		ID:         question.ID,
		EventID:    question.EventID,
		Identifier: question.Identifier,
		Text:       question.Text,
	}, nil
}

func (r *OrderRepository) FindAnswers(ctx context.Context, positionIDs []uint, questionID uint) (map[uint]string, error) {
	answers, err := r.dao.FindAnswers(ctx, positionIDs, questionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAnswers -> %w", err)
	}

	return answers, nil
}
