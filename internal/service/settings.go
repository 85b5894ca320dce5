package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type SettingsStore interface {
	Get(ctx context.Context, eventID uint) (domain.Settings, error)
	SaveWithLog(ctx context.Context, eventID uint, settings domain.Settings, entry domain.LogEntry) error
}

type SettingsService struct {
	repo SettingsStore

	// stylesheetVersion is bumped whenever part information goes public, so
	// cached customer stylesheets pick up the plugin postamble.
	stylesheetVersion atomic.Uint64
}

func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

func (s *SettingsService) GetSettings(ctx context.Context, eventID uint) (domain.Settings, error) {
	settings, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return settings, nil
}

// UpdateSettings saves the event's settings. Each save logs the resulting
// visibility, and switching to public bumps the stylesheet version.
func (s *SettingsService) UpdateSettings(ctx context.Context, eventID uint, settings domain.Settings, userID uint) (domain.Settings, error) {
	action := domain.ActionSettingsPrivate
	if settings.Public {
		action = domain.ActionSettingsPublic
		s.stylesheetVersion.Add(1)
	}

	entry := domain.LogEntry{
		EventID:    eventID,
		ObjectType: "event",
		ObjectID:   eventID,
		ActionType: action,
		UserID:     userID,
	}

	if err := s.repo.SaveWithLog(ctx, eventID, settings, entry); err != nil {
		return domain.Settings{}, fmt.Errorf("s.repo.SaveWithLog -> %w", err)
	}

	saved, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return saved, nil
}

func (s *SettingsService) StylesheetVersion() uint64 {
	return s.stylesheetVersion.Load()
}
