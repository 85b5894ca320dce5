package service

import (
	"context"
	"fmt"

	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	FindEventBySlugs(ctx context.Context, organizerSlug, eventSlug string) (domain.Event, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// ResolveEvent maps the organizer/event slug pair of a URL to the event.
func (s *EventService) ResolveEvent(ctx context.Context, organizerSlug, eventSlug string) (domain.Event, error) {
	event, err := s.repo.FindEventBySlugs(ctx, organizerSlug, eventSlug)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindEventBySlugs -> %w", err)
	}

	return event, nil
}
