package service

import (
	"context"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type LogEntryRepository interface {
	FindByEvent(ctx context.Context, eventID uint, offset, limit int) ([]domain.LogEntry, error)
	FindByObject(ctx context.Context, eventID uint, objectType string, objectID uint) ([]domain.LogEntry, error)
}

type LogEntryService struct {
	repo LogEntryRepository
}

func NewLogEntryService(repo LogEntryRepository) *LogEntryService {
	return &LogEntryService{
		repo: repo,
	}
}

func (s *LogEntryService) ListByEvent(ctx context.Context, eventID uint, page, pageSize int) ([]domain.LogEntry, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	entries, err := s.repo.FindByEvent(ctx, eventID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return entries, nil
}

func (s *LogEntryService) ListByObject(ctx context.Context, eventID uint, objectType string, objectID uint) ([]domain.LogEntry, error) {
	entries, err := s.repo.FindByObject(ctx, eventID, objectType, objectID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByObject -> %w", err)
	}

	return entries, nil
}
