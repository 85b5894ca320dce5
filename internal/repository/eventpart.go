package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository/dao"
)

var (
	ErrEventPartNotFound   = dao.ErrEventPartNotFound
	ErrDuplicateAssignment = dao.ErrDuplicateAssignment
)

type EventPartDAO interface {
	InsertWithLog(ctx context.Context, part dao.EventPart, entry dao.LogEntry) (dao.EventPart, error)
	UpdateWithLog(ctx context.Context, part dao.EventPart, entry dao.LogEntry) (dao.EventPart, error)
	DeleteWithLog(ctx context.Context, part dao.EventPart, entry dao.LogEntry) error
	FindByID(ctx context.Context, eventID, id uint) (dao.EventPart, error)
	FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]dao.EventPart, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	FindByEventAndType(ctx context.Context, eventID uint, partType string) ([]dao.EventPart, error)
	ReplaceAssignments(ctx context.Context, eventID uint, orderCode string, picks map[string]uint) error
	FindAssignedParts(ctx context.Context, orderCode string) (map[string]dao.EventPart, error)
	FindAssignedOrders(ctx context.Context, partID uint) ([]dao.Order, error)
}

type EventPartRepository struct {
	dao EventPartDAO
}

func NewEventPartRepository(dao EventPartDAO) *EventPartRepository {
	return &EventPartRepository{
		dao: dao,
	}
}

func (r *EventPartRepository) domainToDao(p domain.EventPart) dao.EventPart {
	description := "{}"
	if p.Description != nil {
		if encoded, err := json.Marshal(p.Description); err == nil {
			description = string(encoded)
		}
	}

	return dao.EventPart{
		ID:          p.ID,
		EventID:     p.EventID,
		Name:        p.Name,
		Description: description,
		Category:    p.Category,
		Capacity:    p.Capacity,
		Type:        string(p.Type),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *EventPartRepository) daoToDomain(p dao.EventPart) domain.EventPart {
	description := domain.LocalizedString{}
	if p.Description != "" {
		_ = json.Unmarshal([]byte(p.Description), &description)
	}

	return domain.EventPart{
		ID:          p.ID,
		EventID:     p.EventID,
		Name:        p.Name,
		Description: description,
		Category:    p.Category,
		Capacity:    p.Capacity,
		Type:        domain.PartType(p.Type),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *EventPartRepository) logEntryToDao(entry domain.LogEntry) dao.LogEntry {
	data := "{}"
	if entry.Data != nil {
		if encoded, err := json.Marshal(entry.Data); err == nil {
			data = string(encoded)
		}
	}

	return dao.LogEntry{
		EventID:    entry.EventID,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		ActionType: entry.ActionType,
		Data:       data,
		UserID:     entry.UserID,
	}
}

func (r *EventPartRepository) CreateWithLog(ctx context.Context, part domain.EventPart, entry domain.LogEntry) (domain.EventPart, error) {
	created, err := r.dao.InsertWithLog(ctx, r.domainToDao(part), r.logEntryToDao(entry))
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("r.dao.InsertWithLog -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventPartRepository) UpdateWithLog(ctx context.Context, part domain.EventPart, entry domain.LogEntry) (domain.EventPart, error) {
	updated, err := r.dao.UpdateWithLog(ctx, r.domainToDao(part), r.logEntryToDao(entry))
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("r.dao.UpdateWithLog -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventPartRepository) DeleteWithLog(ctx context.Context, part domain.EventPart, entry domain.LogEntry) error {
	if err := r.dao.DeleteWithLog(ctx, r.domainToDao(part), r.logEntryToDao(entry)); err != nil {
		return fmt.Errorf("r.dao.DeleteWithLog -> %w", err)
	}

	return nil
}

func (r *EventPartRepository) FindByID(ctx context.Context, eventID, id uint) (domain.EventPart, error) {
	part, err := r.dao.FindByID(ctx, eventID, id)
	if err != nil {
		return domain.EventPart{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(part), nil
}

func (r *EventPartRepository) FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]domain.EventPart, error) {
	parts, err := r.dao.FindByEvent(ctx, eventID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	converted := make([]domain.EventPart, len(parts))
	for i, part := range parts {
		converted[i] = r.daoToDomain(part)
	}

	return converted, nil
}

func (r *EventPartRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByEvent -> %w", err)
	}

	return count, nil
}

func (r *EventPartRepository) FindByEventAndType(ctx context.Context, eventID uint, partType domain.PartType) ([]domain.EventPart, error) {
	parts, err := r.dao.FindByEventAndType(ctx, eventID, string(partType))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndType -> %w", err)
	}

	converted := make([]domain.EventPart, len(parts))
	for i, part := range parts {
		converted[i] = r.daoToDomain(part)
	}

	return converted, nil
}

func (r *EventPartRepository) ReplaceAssignments(ctx context.Context, eventID uint, orderCode string, picks map[domain.PartType]uint) error {
	daoPicks := make(map[string]uint, len(picks))
	for partType, partID := range picks {
		daoPicks[string(partType)] = partID
	}

	if err := r.dao.ReplaceAssignments(ctx, eventID, orderCode, daoPicks); err != nil {
		return fmt.Errorf("r.dao.ReplaceAssignments -> %w", err)
	}

	return nil
}

func (r *EventPartRepository) FindAssignedParts(ctx context.Context, orderCode string) (domain.AssignmentSet, error) {
	parts, err := r.dao.FindAssignedParts(ctx, orderCode)
	if err != nil {
		return domain.AssignmentSet{}, fmt.Errorf("r.dao.FindAssignedParts -> %w", err)
	}

	var set domain.AssignmentSet
	for partType, part := range parts {
		converted := r.daoToDomain(part)
		switch domain.PartType(partType) {
		case domain.PartTypeStart:
			set.Start = &converted
		case domain.PartTypeMiddle:
			set.Middle = &converted
		case domain.PartTypeEnd:
			set.End = &converted
		}
	}

	return set, nil
}

func (r *EventPartRepository) FindAssignedOrders(ctx context.Context, partID uint) ([]domain.Order, error) {
	orders, err := r.dao.FindAssignedOrders(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAssignedOrders -> %w", err)
	}

	converted := make([]domain.Order, len(orders))
	for i, order := range orders {
		converted[i] = domain.Order{
			Code:      order.Code,
			EventID:   order.EventID,
			Email:     order.Email,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
		}
	}

	return converted, nil
}
