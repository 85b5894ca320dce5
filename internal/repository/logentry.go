package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository/dao"
)

type LogEntryDAO interface {
	Insert(ctx context.Context, entry dao.LogEntry) (dao.LogEntry, error)
	FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]dao.LogEntry, error)
	FindByObject(ctx context.Context, eventID uint, objectType string, objectID uint) ([]dao.LogEntry, error)
}

type LogEntryRepository struct {
	dao LogEntryDAO
}

func NewLogEntryRepository(dao LogEntryDAO) *LogEntryRepository {
	return &LogEntryRepository{
		dao: dao,
	}
}

func (r *LogEntryRepository) daoToDomain(e dao.LogEntry) domain.LogEntry {
	data := map[string]interface{}{}
	if e.Data != "" {
		_ = json.Unmarshal([]byte(e.Data), &data)
	}

	return domain.LogEntry{
		ID:         e.ID,
		EventID:    e.EventID,
		ObjectType: e.ObjectType,
		ObjectID:   e.ObjectID,
		ActionType: e.ActionType,
		Data:       data,
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
	}
}

func (r *LogEntryRepository) FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]domain.LogEntry, error) {
	entries, err := r.dao.FindByEvent(ctx, eventID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	converted := make([]domain.LogEntry, len(entries))
	for i, entry := range entries {
		converted[i] = r.daoToDomain(entry)
	}

	return converted, nil
}

func (r *LogEntryRepository) FindByObject(ctx context.Context, eventID uint, objectType string, objectID uint) ([]domain.LogEntry, error) {
	entries, err := r.dao.FindByObject(ctx, eventID, objectType, objectID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByObject -> %w", err)
	}

	converted := make([]domain.LogEntry, len(entries))
	for i, entry := range entries {
		converted[i] = r.daoToDomain(entry)
	}

	return converted, nil
}
