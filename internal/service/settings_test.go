package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocoteam/eventparts-api/internal/domain"
)

type fakeSettingsStore struct {
	settings domain.Settings
	entries  []domain.LogEntry
}

func (f *fakeSettingsStore) Get(_ context.Context, _ uint) (domain.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsStore) SaveWithLog(_ context.Context, _ uint, settings domain.Settings, entry domain.LogEntry) error {
	f.settings = settings
	f.entries = append(f.entries, entry)
	return nil
}

func TestSettingsService_UpdateSettings_LogsVisibility(t *testing.T) {
	store := &fakeSettingsStore{settings: domain.DefaultSettings()}
	svc := NewSettingsService(store)

	submitted := domain.DefaultSettings()
	submitted.Public = true

	saved, err := svc.UpdateSettings(context.Background(), 1, submitted, 7)
	require.NoError(t, err)
	assert.True(t, saved.Public)

	require.Len(t, store.entries, 1)
	assert.Equal(t, domain.ActionSettingsPublic, store.entries[0].ActionType)
	assert.Equal(t, uint(7), store.entries[0].UserID)
	assert.Equal(t, "event", store.entries[0].ObjectType)

	// Saving again while private logs not_public, every save leaves a trace.
	submitted.Public = false
	_, err = svc.UpdateSettings(context.Background(), 1, submitted, 7)
	require.NoError(t, err)
	require.Len(t, store.entries, 2)
	assert.Equal(t, domain.ActionSettingsPrivate, store.entries[1].ActionType)
}

func TestSettingsService_StylesheetVersion(t *testing.T) {
	store := &fakeSettingsStore{settings: domain.DefaultSettings()}
	svc := NewSettingsService(store)

	assert.Zero(t, svc.StylesheetVersion())

	submitted := domain.DefaultSettings()
	submitted.Public = false
	_, err := svc.UpdateSettings(context.Background(), 1, submitted, 1)
	require.NoError(t, err)
	assert.Zero(t, svc.StylesheetVersion(), "a private save must not regenerate stylesheets")

	submitted.Public = true
	_, err = svc.UpdateSettings(context.Background(), 1, submitted, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, svc.StylesheetVersion())
}
